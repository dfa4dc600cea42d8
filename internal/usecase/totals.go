package usecase

// 合計計算の入力1行分
type PricedLine struct {
	UnitPrice int64
	Quantity  int64
}

// CalcTotals は明細からtotalとitem_countを毎回ゼロから計算する。
// 差分更新はしない（累積誤差・更新漏れを避ける）。
func CalcTotals(lines []PricedLine) (total int64, itemCount int64) {
	for _, l := range lines {
		total += l.UnitPrice * l.Quantity
		itemCount += l.Quantity
	}
	return total, itemCount
}
