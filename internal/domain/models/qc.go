package models

// QCStatus is a quality-control verdict attached to a receipt or a ledger entry.
type QCStatus string

const (
	QCPass  QCStatus = "Pass"
	QCFail  QCStatus = "Fail"
	QCCheck QCStatus = "Check"
)

// Valid reports whether the verdict is one of the known values.
func (s QCStatus) Valid() bool {
	switch s {
	case QCPass, QCFail, QCCheck:
		return true
	default:
		return false
	}
}
