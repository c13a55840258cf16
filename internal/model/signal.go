package model

// Verdict is the categorical output of the strategy engine.
type Verdict string

const (
	VerdictStrongBuy  Verdict = "STRONG BUY"
	VerdictBuy        Verdict = "BUY"
	VerdictAccumulate Verdict = "ACCUMULATE"
	VerdictHold       Verdict = "HOLD"
	VerdictReduce     Verdict = "REDUCE"
	VerdictSell       Verdict = "SELL"
)

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string
	Score      float64
	Commentary string
}

// Signal is the final output of the strategy engine.
type Signal struct {
	Factors    []FactorScore
	TotalScore float64
	Verdict    Verdict
}
