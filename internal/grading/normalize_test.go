package grading

import "testing"

func TestNormalizeClampsHigh(t *testing.T) {
	res := Normalize(Result{Score: 15, Feedback: "x"}, 10)
	if res.Score != 10 {
		t.Errorf("score = %v, want clamped 10", res.Score)
	}
}

func TestNormalizeClampsLow(t *testing.T) {
	res := Normalize(Result{Score: -3, Feedback: "x"}, 10)
	if res.Score != 0 {
		t.Errorf("score = %v, want clamped 0", res.Score)
	}
}

func TestNormalizeOverridesModelTotalPoints(t *testing.T) {
	// The model echoed total_points=100; the caller-computed value wins.
	res := Normalize(Result{Score: 7, TotalPoints: 100, Feedback: "x"}, 10)
	if res.TotalPoints != 10 {
		t.Errorf("total_points = %d, want caller value 10", res.TotalPoints)
	}
}

func TestNormalizeInRangeUntouched(t *testing.T) {
	res := Normalize(Result{Score: 7.5, TotalPoints: 10, Feedback: "good"}, 10)
	if res.Score != 7.5 || res.Feedback != "good" {
		t.Errorf("in-range result changed: %+v", res)
	}
}

func TestNormalizeFeedbackNeverEmpty(t *testing.T) {
	for _, fb := range []string{"", "   ", "\n\t"} {
		res := Normalize(Result{Score: 5, Feedback: fb}, 10)
		if res.Feedback != feedbackNotFound {
			t.Errorf("feedback %q: got %q, want placeholder", fb, res.Feedback)
		}
	}
}

func TestNormalizeBadTotalPoints(t *testing.T) {
	res := Normalize(Result{Score: 50, Feedback: "x"}, 0)
	if res.TotalPoints != DefaultTotalPoints {
		t.Errorf("total_points = %d, want default %d", res.TotalPoints, DefaultTotalPoints)
	}
	if res.Score != float64(DefaultTotalPoints) {
		t.Errorf("score = %v, want clamped to %d", res.Score, DefaultTotalPoints)
	}
}
