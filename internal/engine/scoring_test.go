package engine

import "testing"

func TestComputePoints(t *testing.T) {
	rules := Scoring{CommentPoints: 1, LikePointsPerUnit: 0.01, GiftPointsPerCoin: 10}

	tests := []struct {
		name  string
		sc    Scoring
		typ   EventType
		value float64
		want  float64
	}{
		{name: "comment ignores value", sc: rules, typ: EventComment, value: 99, want: 1},
		{name: "like scales per unit", sc: rules, typ: EventLike, value: 100, want: 1.0},
		{name: "gift scales per coin", sc: rules, typ: EventGift, value: 5, want: 50},
		{name: "unknown type scores zero", sc: rules, typ: EventType("follow"), value: 10, want: 0},
		{name: "empty rules fall back to defaults for comment", sc: Scoring{}, typ: EventComment, value: 1, want: 1},
		{name: "empty rules fall back to defaults for like", sc: Scoring{}, typ: EventLike, value: 200, want: 2.0},
		{name: "empty rules fall back to defaults for gift", sc: Scoring{}, typ: EventGift, value: 3, want: 30},
		{name: "partial rules keep set fields", sc: Scoring{CommentPoints: 2.5}, typ: EventComment, value: 1, want: 2.5},
		{name: "partial rules default unset fields", sc: Scoring{CommentPoints: 2.5}, typ: EventGift, value: 2, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePoints(tt.sc, tt.typ, tt.value)
			if got != tt.want {
				t.Fatalf("ComputePoints(%+v, %s, %v) = %v, want %v", tt.sc, tt.typ, tt.value, got, tt.want)
			}
		})
	}
}

func TestComputePointsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := ComputePoints(DefaultScoring(), EventGift, 7); got != 70 {
			t.Fatalf("run %d: got %v, want 70", i, got)
		}
	}
}
