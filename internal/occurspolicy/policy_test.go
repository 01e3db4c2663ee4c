package occurspolicy

import "testing"

func TestCheckCardinality(t *testing.T) {
	tests := []struct {
		name         string
		minElements  uint64
		maxElements  uint64
		maxUnbounded bool
		want         Issue
	}{
		{name: "ok bounded", minElements: 0, maxElements: 2, want: OK},
		{name: "ok equal", minElements: 2, maxElements: 2, want: OK},
		{name: "min greater than max", minElements: 3, maxElements: 1, want: MinGreaterThanMax},
		{name: "unbounded max with nonzero min", minElements: 5, maxUnbounded: true, want: OK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckCardinality(tt.minElements, tt.maxElements, tt.maxUnbounded)
			if got != tt.want {
				t.Fatalf("CheckCardinality() = %v, want %v", got, tt.want)
			}
		})
	}
}
