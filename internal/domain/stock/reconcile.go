package stock

import "github.com/shopspring/decimal"

// Reconciliation es el resultado de conciliar los dos conteos ciegos de un producto.
type Reconciliation struct {
	DiffBetweenCounts int // countB - countA
	FinalQuantity     int
	DiffVsSystem      int // FinalQuantity - systemStock
	ValueOfDiff       decimal.Decimal
}

// Reconcile decide la cantidad autoritativa entre dos conteos independientes.
// Gana el conteo con menor distancia absoluta al stock registrado por el
// sistema; en empate gana el contador A. Es una heurística: asume que el stock
// del sistema suele estar más cerca de la verdad que un único conteo ciego, y
// resuelve el desacuerdo sin exigir un tercer conteo.
func Reconcile(systemStock, countA, countB int, unitPrice decimal.Decimal) Reconciliation {
	final := countA
	if absInt(countB-systemStock) < absInt(countA-systemStock) {
		final = countB
	}
	diffVsSystem := final - systemStock
	return Reconciliation{
		DiffBetweenCounts: countB - countA,
		FinalQuantity:     final,
		DiffVsSystem:      diffVsSystem,
		ValueOfDiff:       unitPrice.Mul(decimal.NewFromInt(int64(diffVsSystem))),
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
