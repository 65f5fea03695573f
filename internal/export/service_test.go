package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lkoehler/ladeplan/internal/entity"
	"github.com/lkoehler/ladeplan/internal/plan"
)

func fptr(v float64) *float64 { return &v }

func exportPlan() *entity.LoadingPlan {
	return &entity.LoadingPlan{
		ID:       uuid.New(),
		Filename: "plan.pdf",
		Pages:    2,
		Records: []entity.ComponentRecord{
			{ComponentID: "9", TruckID: "PB1", TruckType: "PB", Weight: fptr(100.5), Page: 1},
			{ComponentID: "10*", TruckID: "PB1", TruckType: "PB", Page: 1, IsPipe: true},
			{ComponentID: "Bund 2", TruckID: "PB1", TruckType: "PB", Page: 1, IsBundle: true},
			{ComponentID: "7", TruckID: "PW2", TruckType: "PW", TrailerID: "AH1", Weight: fptr(30), Page: 2},
		},
		TruckIDs:   []string{"PB1", "PW2"},
		TruckTypes: []string{"PB", "PW"},
	}
}

func TestExportXLSX_RoundTripMatchesFilteredView(t *testing.T) {
	svc := NewService(nil)
	p := exportPlan()
	f := plan.Filter{}

	data, err := svc.ExportXLSX(context.Background(), p, f)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(ComponentsSheet)
	require.NoError(t, err)

	visible := plan.Apply(p, f)
	require.Len(t, rows, len(visible)+1, "header plus one row per visible record")

	assert.Equal(t, "Bauteil", rows[0][0])
	assert.Equal(t, "Gewicht [kg]", rows[0][3])

	// sorted order: 9 then 10* on PB1, then 7 on PW2
	assert.Equal(t, "9", rows[1][0])
	assert.Equal(t, "PB1", rows[1][1])
	assert.Equal(t, "100.5", rows[1][3])

	assert.Equal(t, "10*", rows[2][0])
	assert.Equal(t, "7", rows[3][0])

	trailer, err := wb.GetCellValue(ComponentsSheet, "C4")
	require.NoError(t, err)
	assert.Equal(t, "AH1", trailer)
}

func TestExportXLSX_MissingWeightIsBlank(t *testing.T) {
	svc := NewService(nil)
	data, err := svc.ExportXLSX(context.Background(), exportPlan(), plan.Filter{})
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	// row 3 is "10*" whose weight is missing
	weight, err := wb.GetCellValue(ComponentsSheet, "D3")
	require.NoError(t, err)
	assert.Equal(t, "", weight, "missing weight must be blank, not 0")

	pipe, err := wb.GetCellValue(ComponentsSheet, "E3")
	require.NoError(t, err)
	assert.Equal(t, "x", pipe)
}

func TestExportXLSX_SummarySheet(t *testing.T) {
	svc := NewService(nil)
	data, err := svc.ExportXLSX(context.Background(), exportPlan(), plan.Filter{})
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(SummarySheet)
	require.NoError(t, err)
	// header + PB1 + PW2 + Gesamt
	require.Len(t, rows, 4)

	assert.Equal(t, "PB1", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
	assert.Equal(t, "Bund 2", rows[1][3], "hidden bundles still listed as info")

	assert.Equal(t, "Gesamt", rows[3][0])
	assert.Equal(t, "3", rows[3][1])
}

func TestExportXLSX_FilteredExportMatchesFilter(t *testing.T) {
	svc := NewService(nil)
	f := plan.Filter{TruckID: "PW2"}

	data, err := svc.ExportXLSX(context.Background(), exportPlan(), f)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(ComponentsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "7", rows[1][0])
}

func TestExportXLSX_EmptyPlanStillProducesWorkbook(t *testing.T) {
	svc := NewService(nil)
	p := &entity.LoadingPlan{ID: uuid.New(), Filename: "empty.pdf"}

	data, err := svc.ExportXLSX(context.Background(), p, plan.Filter{})
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(ComponentsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
