package hedgebook

// FlowDirection classifies the net USD effect of a transaction on a
// position: money moving in, money moving out, or pure overhead (approvals,
// claims, dust).
type FlowDirection string

const (
	FlowIncrease FlowDirection = "INCREASE"
	FlowDecrease FlowDirection = "DECREASE"
	FlowOverhead FlowDirection = "OVERHEAD"
)

// overheadThreshold is the absolute net USD value under which a transaction
// is considered overhead rather than a real flow.
var overheadThreshold = M(1)

// transferValue prices a transfer with the token dictionary. Unknown tokens
// are valued at zero: better a visible gap than an invented price.
func transferValue(tr TokenTransfer, tokens TokenDict) Money {
	info := tokens[tr.TokenID]
	return M(info.Price).Mul(Q(tr.Amount))
}

// InferFlow computes the direction and gross in/out USD values of a
// transaction. Receives grow the wallet, so a positive net (in − out) means
// the position shrank: a DECREASE.
func InferFlow(tx Transaction, tokens TokenDict) (FlowDirection, Money, Money) {
	var in, out Money
	for _, tr := range tx.Sends {
		out = out.Add(transferValue(tr, tokens))
	}
	for _, tr := range tx.Receives {
		in = in.Add(transferValue(tr, tokens))
	}

	return classifyFlow(in.Sub(out)), in, out
}

// classifyFlow maps a net USD value (in − out) to a direction. It applies
// to a single transaction and to a group total alike.
func classifyFlow(net Money) FlowDirection {
	switch {
	case net.Abs().LessThan(overheadThreshold):
		return FlowOverhead
	case net.IsPositive():
		return FlowDecrease
	default:
		return FlowIncrease
	}
}
