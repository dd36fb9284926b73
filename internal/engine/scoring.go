package engine

// Scoring defaults applied when a game's rule field is unset.
const (
	DefaultCommentPoints     = 1
	DefaultLikePointsPerUnit = 0.01
	DefaultGiftPointsPerCoin = 10
)

// DefaultScoring returns the rule set used when a game carries no rules of
// its own.
func DefaultScoring() Scoring {
	return Scoring{
		CommentPoints:     DefaultCommentPoints,
		LikePointsPerUnit: DefaultLikePointsPerUnit,
		GiftPointsPerCoin: DefaultGiftPointsPerCoin,
	}
}

// ComputePoints maps one raw event to its point value. Pure: no state, no
// I/O. Comments award a fixed amount regardless of value; likes and gifts
// scale with the raw unit count. Unknown types score zero.
func ComputePoints(sc Scoring, typ EventType, value float64) float64 {
	switch typ {
	case EventComment:
		return orDefault(sc.CommentPoints, DefaultCommentPoints)
	case EventLike:
		return orDefault(sc.LikePointsPerUnit, DefaultLikePointsPerUnit) * value
	case EventGift:
		return orDefault(sc.GiftPointsPerCoin, DefaultGiftPointsPerCoin) * value
	default:
		return 0
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
