package dto

import (
	"fmt"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/pkg/validator"
)

type ClimateRecordRequest struct {
	PointID         int64    `json:"point_id"`
	RecordDate      string   `json:"record_date"`
	TemperatureAvgC *float64 `json:"temperature_avg_c"`
	TemperatureMinC *float64 `json:"temperature_min_c"`
	TemperatureMaxC *float64 `json:"temperature_max_c"`
	PrecipitationMm *float64 `json:"precipitation_mm"`
	HumidityPct     *float64 `json:"humidity_pct"`

	date models.Date
}

func (r *ClimateRecordRequest) Validate(v *validator.Validator) {
	r.validate(v, "")
}

func (r *ClimateRecordRequest) validate(v *validator.Validator, prefix string) {
	v.Check(r.PointID > 0, prefix+"point_id", "must be a positive integer")
	r.date = parseDate(v, prefix+"record_date", r.RecordDate)

	checkOptional(v, prefix+"temperature_avg_c", r.TemperatureAvgC, -90, 60)
	checkOptional(v, prefix+"temperature_min_c", r.TemperatureMinC, -90, 60)
	checkOptional(v, prefix+"temperature_max_c", r.TemperatureMaxC, -90, 60)
	checkOptional(v, prefix+"precipitation_mm", r.PrecipitationMm, 0, 2000)
	checkOptional(v, prefix+"humidity_pct", r.HumidityPct, 0, 100)

	if r.TemperatureMinC != nil && r.TemperatureMaxC != nil {
		v.Check(*r.TemperatureMinC <= *r.TemperatureMaxC, prefix+"temperature_min_c", "must not exceed temperature_max_c")
	}
}

// ToModel must be called after Validate.
func (r *ClimateRecordRequest) ToModel() models.ClimateRecord {
	return models.ClimateRecord{
		PointID:         r.PointID,
		RecordDate:      r.date,
		TemperatureAvgC: r.TemperatureAvgC,
		TemperatureMinC: r.TemperatureMinC,
		TemperatureMaxC: r.TemperatureMaxC,
		PrecipitationMm: r.PrecipitationMm,
		HumidityPct:     r.HumidityPct,
	}
}

const MaxBulkRecords = 1000

// BulkClimateRequest imports many records at once. Errors are keyed by position,
// e.g. "records[3].record_date".
type BulkClimateRequest struct {
	Records []ClimateRecordRequest `json:"records"`
}

func (r *BulkClimateRequest) Validate(v *validator.Validator) {
	v.Check(len(r.Records) > 0, "records", "must contain at least one record")
	v.Check(len(r.Records) <= MaxBulkRecords, "records", fmt.Sprintf("must not contain more than %d records", MaxBulkRecords))

	for i := range r.Records {
		r.Records[i].validate(v, fmt.Sprintf("records[%d].", i))
	}
}

func (r *BulkClimateRequest) ToModels() []models.ClimateRecord {
	out := make([]models.ClimateRecord, len(r.Records))
	for i := range r.Records {
		out[i] = r.Records[i].ToModel()
	}
	return out
}

func checkOptional(v *validator.Validator, key string, value *float64, lo, hi float64) {
	if value == nil {
		return
	}
	v.Check(validator.Between(*value, lo, hi), key, fmt.Sprintf("must be between %g and %g", lo, hi))
}
