package chunker

import "testing"

func TestHasCompleteSentence(t *testing.T) {
	if !hasCompleteSentence("This is fine. Ok.") {
		t.Error("expected a complete sentence to be detected")
	}
	if hasCompleteSentence("Hi. No.") {
		t.Error("expected short segments not to count as complete sentences")
	}
}

func TestContentQuality_Empty(t *testing.T) {
	if contentQuality("   ") != 0 {
		t.Error("expected 0 for whitespace-only content")
	}
}

func TestContentQuality_Short(t *testing.T) {
	if contentQuality("short") != 0.3 {
		t.Errorf("expected 0.3 for short content, got %f", contentQuality("short"))
	}
}

func TestContentQuality_FullCredit(t *testing.T) {
	got := contentQuality("This is a proper sentence: with punctuation.")
	if got != 1.0 {
		t.Errorf("expected full credit (1.0), got %f", got)
	}
}

func TestQualityScore_ClampedToUnitInterval(t *testing.T) {
	cfg := NewConfig()
	score := qualityScore("", 0, nil, cfg)
	if score < 0 || score > 1 {
		t.Errorf("expected score in [0,1], got %f", score)
	}
}
