package queueexport_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"latrack/internal/domain"
	"latrack/internal/queueexport"
)

func sampleRows() []queueexport.Row {
	submitted := time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)
	return []queueexport.Row{
		{
			CommuneName:      "Xã Tân Phú",
			CommuneCode:      "TP-01",
			District:         "Huyện Châu Thành",
			Status:           domain.AssessmentPendingReview,
			Registration:     domain.RegistrationApproved,
			Progress:         87.5,
			AchievedCriteria: 4,
			TotalCriteria:    5,
			SubmissionDate:   &submitted,
			CriterionStatuses: map[string]domain.IndicatorStatus{
				"1": domain.StatusAchieved,
				"2": domain.StatusNotAchieved,
			},
		},
		{
			CommuneName: "Xã Long Hòa",
			CommuneCode: "LH-02",
			Status:      domain.AssessmentDraft,
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := queueexport.WriteXLSX(&buf, sampleRows(), []string{"1", "2"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Review Queue"}, f.GetSheetList())

	got, err := f.GetRows("Review Queue")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Commune", got[0][0])
	assert.Equal(t, "Submitted At", got[0][8])
	// Criterion columns follow the fixed header in the given order.
	assert.Equal(t, "1", got[0][10])
	assert.Equal(t, "2", got[0][11])

	assert.Equal(t, "Xã Tân Phú", got[1][0])
	assert.Equal(t, "TP-01", got[1][1])
	assert.Equal(t, "pending_review", got[1][3])
	assert.Equal(t, "approved", got[1][4])
	assert.Equal(t, "87.5", got[1][5])
	assert.Equal(t, "15/06/2026", got[1][8])
	assert.Equal(t, "achieved", got[1][10])
	assert.Equal(t, "not-achieved", got[1][11])

	assert.Equal(t, "Xã Long Hòa", got[2][0])
	assert.Equal(t, "draft", got[2][3])
}

func TestWriteXLSX_NoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, queueexport.WriteXLSX(&buf, nil, []string{"1"}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetRows("Review Queue")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := queueexport.WriteCSV(&buf, sampleRows(), []string{"1", "2"})
	require.NoError(t, err)

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "missing BOM")

	records, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Commune", records[0][0])
	assert.Equal(t, "2", records[0][11])

	assert.Equal(t, "Xã Tân Phú", records[1][0])
	assert.Equal(t, "87.5", records[1][5])
	assert.Equal(t, "15/06/2026", records[1][8])
	assert.Equal(t, "achieved", records[1][10])

	assert.Equal(t, "Xã Long Hòa", records[2][0])
	assert.Equal(t, "", records[2][8])
}
