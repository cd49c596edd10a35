package analysis

import "testing"

func TestScoreNilResult(t *testing.T) {
	if got := Score(nil); got != nil {
		t.Errorf("expected nil assessment for nil result, got %+v", got)
	}
}

func TestScoreWorkedExamples(t *testing.T) {
	tests := []struct {
		name           string
		result         AnalysisResult
		wantScore      int
		wantLikelihood string
		wantBand       string
	}{
		{
			// 50+15+20+10+8 = 103, clamped to 100
			name: "best case clamps to 100",
			result: AnalysisResult{
				Platform:      "Instacart",
				Category:      "Rating drop",
				MissingInfo:   nil,
				DaysRemaining: 20,
			},
			wantScore:      100,
			wantLikelihood: "High",
			wantBand:       "65-85%",
		},
		{
			// 50-25-15-10-12 = -12, clamped to 0
			name: "worst case clamps to 0",
			result: AnalysisResult{
				Platform:      "Amazon Flex",
				Category:      "Safety flag",
				MissingInfo:   []string{"a", "b", "c", "d"},
				DaysRemaining: 2,
			},
			wantScore:      0,
			wantLikelihood: "Low",
			wantBand:       "15-40%",
		},
		{
			// 50-5 = 45
			name: "uncategorized with some missing info",
			result: AnalysisResult{
				Platform:      "DoorDash",
				Category:      "other",
				MissingInfo:   []string{"deactivation date"},
				DaysRemaining: 10,
			},
			wantScore:      45,
			wantLikelihood: "Medium",
			wantBand:       "40-65%",
		},
		{
			// 50+10+20+10 = 90
			name: "completion case with full notice",
			result: AnalysisResult{
				Platform:      "Shipt",
				Category:      "Completion rate",
				MissingInfo:   nil,
				DaysRemaining: 30,
			},
			wantScore:      90,
			wantLikelihood: "High",
			wantBand:       "65-85%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(&tt.result)
			if got == nil {
				t.Fatal("expected assessment, got nil")
			}
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Likelihood != tt.wantLikelihood {
				t.Errorf("likelihood = %s, want %s", got.Likelihood, tt.wantLikelihood)
			}
			if got.ConfidenceBand != tt.wantBand {
				t.Errorf("band = %s, want %s", got.ConfidenceBand, tt.wantBand)
			}
		})
	}
}

func TestScoreCategoryBranchesMutuallyExclusive(t *testing.T) {
	// A category matching both "rating" and "safety" must only take the
	// first branch (+15), never both.
	got := Score(&AnalysisResult{
		Category:      "rating safety",
		MissingInfo:   []string{"x"},
		DaysRemaining: 10,
	})
	// 50+15-5 = 60
	if got.Score != 60 {
		t.Errorf("score = %d, want 60", got.Score)
	}
}

func TestScoreAlwaysBounded(t *testing.T) {
	categories := []string{"", "rating", "performance review", "safety", "fraud", "completion"}
	platforms := []string{"", "Instacart", "Amazon Flex", "Uber"}
	missing := [][]string{nil, {"a"}, {"a", "b", "c", "d", "e"}}
	days := []int{0, 1, 3, 14, 15, 60}

	for _, c := range categories {
		for _, p := range platforms {
			for _, m := range missing {
				for _, d := range days {
					got := Score(&AnalysisResult{
						Platform:      p,
						Category:      c,
						MissingInfo:   m,
						DaysRemaining: d,
					})
					if got.Score < 0 || got.Score > 100 {
						t.Fatalf("score %d out of [0,100] for cat=%q plat=%q missing=%d days=%d",
							got.Score, c, p, len(m), d)
					}
					wantLikelihood, wantBand := expectedBand(got.Score)
					if got.Likelihood != wantLikelihood || got.ConfidenceBand != wantBand {
						t.Fatalf("band mismatch for score %d: got %s/%s, want %s/%s",
							got.Score, got.Likelihood, got.ConfidenceBand, wantLikelihood, wantBand)
					}
				}
			}
		}
	}
}

func expectedBand(score int) (string, string) {
	if score >= 65 {
		return "High", "65-85%"
	}
	if score >= 40 {
		return "Medium", "40-65%"
	}
	return "Low", "15-40%"
}

func TestScoreFactorImpactsSumToScore(t *testing.T) {
	result := AnalysisResult{
		Platform:      "Uber",
		Category:      "Customer rating",
		MissingInfo:   []string{"date"},
		DaysRemaining: 21,
	}
	got := Score(&result)

	sum := baseScore
	for _, f := range got.Factors {
		sum += f.Impact
		if f.Positive != (f.Impact > 0) {
			t.Errorf("factor %q: positive=%v inconsistent with impact %d", f.Text, f.Positive, f.Impact)
		}
	}
	if sum != got.Score {
		t.Errorf("factor impacts sum to %d, score is %d", sum, got.Score)
	}
}
