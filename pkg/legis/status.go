package legis

// BillStatus is the fixed vocabulary of bill states. Values match the
// state codes carried by source documents in their state element and
// on action elements.
type BillStatus string

// Bill status vocabulary.
const (
	StatusIntroduced             BillStatus = "INTRODUCED"
	StatusReferred               BillStatus = "REFERRED"
	StatusReported               BillStatus = "REPORTED"
	StatusPassOverHouse          BillStatus = "PASS_OVER:HOUSE"
	StatusPassOverSenate         BillStatus = "PASS_OVER:SENATE"
	StatusPassedSimpleRes        BillStatus = "PASSED:SIMPLERES"
	StatusPassedConstAmend       BillStatus = "PASSED:CONSTAMEND"
	StatusPassedConcurrentRes    BillStatus = "PASSED:CONCURRENTRES"
	StatusPassedBill             BillStatus = "PASSED:BILL"
	StatusPassBackHouse          BillStatus = "PASS_BACK:HOUSE"
	StatusPassBackSenate         BillStatus = "PASS_BACK:SENATE"
	StatusProvKillSuspension     BillStatus = "PROV_KILL:SUSPENSIONFAILED"
	StatusProvKillCloture        BillStatus = "PROV_KILL:CLOTUREFAILED"
	StatusProvKillPingPong       BillStatus = "PROV_KILL:PINGPONGFAIL"
	StatusProvKillVeto           BillStatus = "PROV_KILL:VETO"
	StatusOverridePassOverHouse  BillStatus = "OVERRIDE_PASS_OVER:HOUSE"
	StatusOverridePassOverSenate BillStatus = "OVERRIDE_PASS_OVER:SENATE"
	StatusVetoedPocket           BillStatus = "VETOED:POCKET"
	StatusEnactedSigned          BillStatus = "ENACTED:SIGNED"
	StatusEnactedVetoOverride    BillStatus = "ENACTED:VETO_OVERRIDE"
)

var billStatuses = map[BillStatus]struct{}{
	StatusIntroduced:             {},
	StatusReferred:               {},
	StatusReported:               {},
	StatusPassOverHouse:          {},
	StatusPassOverSenate:         {},
	StatusPassedSimpleRes:        {},
	StatusPassedConstAmend:       {},
	StatusPassedConcurrentRes:    {},
	StatusPassedBill:             {},
	StatusPassBackHouse:          {},
	StatusPassBackSenate:         {},
	StatusProvKillSuspension:     {},
	StatusProvKillCloture:        {},
	StatusProvKillPingPong:       {},
	StatusProvKillVeto:           {},
	StatusOverridePassOverHouse:  {},
	StatusOverridePassOverSenate: {},
	StatusVetoedPocket:           {},
	StatusEnactedSigned:          {},
	StatusEnactedVetoOverride:    {},
}

// StatusByCode resolves a bill status from its XML state code. The second
// return value reports whether the code is part of the vocabulary.
func StatusByCode(code string) (BillStatus, bool) {
	status := BillStatus(code)
	_, ok := billStatuses[status]
	return status, ok
}

// String implements fmt.Stringer.
func (s BillStatus) String() string {
	return string(s)
}
