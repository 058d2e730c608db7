package types

// Table names of the hosted database
const (
	TableClients        = "clients"
	TableCrops          = "crops"
	TablePoints         = "points"
	TablePolicies       = "policies"
	TableClimateRecords = "climate_records"
)

// PolicyStatus is the lifecycle state of an insurance policy.
type PolicyStatus string

func (s PolicyStatus) String() string {
	return string(s)
}

const (
	PolicyActive    PolicyStatus = "ACTIVE"
	PolicyExpired   PolicyStatus = "EXPIRED"
	PolicyCancelled PolicyStatus = "CANCELLED"
)

// PolicyStatuses lists every accepted PolicyStatus.
var PolicyStatuses = []PolicyStatus{PolicyActive, PolicyExpired, PolicyCancelled}

// ChangeOp is the kind of write that produced a change event.
type ChangeOp string

const (
	OpInsert ChangeOp = "insert"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)
