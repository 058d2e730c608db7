package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Coercion(t *testing.T) {
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	inputs := []string{
		"2024-03-05",
		" 2024-03-05 ",
		"2024/03/05",
		"05-03-2024",
		"05/03/2024",
		"2024-03-05T13:45:00Z",
		"2024-03-05T23:59:59.999-05:00",
		"2024-03-05 08:00:00",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			d, err := ParseDate(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(d.Time), "got %s", d.Time)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-13-01", "32/01/2024"} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, types.ErrInvalidValue, in)
	}
}

func TestDate_JSON(t *testing.T) {
	var p struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024/01/31","end":null}`), &p))
	assert.Equal(t, "2024-01-31", p.Start.String())
	assert.True(t, p.End.IsZero())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-01-31","end":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"start":20240131}`), &p))
}

func TestPolicy_ActiveOn(t *testing.T) {
	p := Policy{
		Status:    types.PolicyActive,
		StartDate: NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:   NewDate(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
	}

	assert.True(t, p.ActiveOn(p.StartDate))
	assert.True(t, p.ActiveOn(p.EndDate))
	assert.False(t, p.ActiveOn(NewDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))))

	p.Status = types.PolicyCancelled
	assert.False(t, p.ActiveOn(p.StartDate))
}
