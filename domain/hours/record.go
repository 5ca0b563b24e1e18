package hours

import (
	"math"
	"strconv"
	"strings"
)

// Source column headers, as they appear in the spreadsheets.
const (
	ColPlanProject  = "Cod Projeto"
	ColPlanActivity = "Descrição do Item"
	ColPlanSold     = "Hs Orçadas"
	ColPlanPlanned  = "Hs Programadas"
	ColPlanExecuted = "Hs Executadas"
	ColPlanBalance  = "Hs Saldo"

	ColEntryProject  = "Código do Projeto"
	ColEntryActivity = "Descrição da Atividade"
	ColEntryType     = "Descrição Tipo Atividade"
	ColEntryDate     = "Data Apontamento"
	ColEntryHours    = "Horas Decimal"

	ColCauseProject     = "Cod Projeto"
	ColCauseStage       = "Etapa"
	ColCauseCause       = "Causa"
	ColCauseHours       = "Horas"
	ColCauseDescription = "Descrição"
)

// Record is one header-keyed spreadsheet row.
type Record map[string]string

// Text returns the trimmed value of col, "" when missing.
func (r Record) Text(col string) string { return strings.TrimSpace(r[col]) }

// Number returns the value of col as a number, 0 when missing or not numeric.
func (r Record) Number(col string) float64 { return ParseNumber(r[col]) }

// PlanRowFromRecord coerces a plan sheet row.
func PlanRowFromRecord(r Record) PlanRow {
	return PlanRow{
		Project:  r.Text(ColPlanProject),
		Activity: r.Text(ColPlanActivity),
		Sold:     r.Number(ColPlanSold),
		Planned:  r.Number(ColPlanPlanned),
		Executed: r.Number(ColPlanExecuted),
		Balance:  r.Number(ColPlanBalance),
	}
}

// TimeEntryRowFromRecord coerces a detailed-hours sheet row. The date stays raw.
func TimeEntryRowFromRecord(r Record) TimeEntryRow {
	return TimeEntryRow{
		Project:  r.Text(ColEntryProject),
		Activity: r.Text(ColEntryActivity),
		Type:     r.Text(ColEntryType),
		Date:     r.Text(ColEntryDate),
		Hours:    r.Number(ColEntryHours),
	}
}

// CauseRowFromRecord coerces a cause classification row.
func CauseRowFromRecord(r Record) CauseRow {
	return CauseRow{
		Project: r.Text(ColCauseProject),
		Stage:   r.Text(ColCauseStage),
		Cause:   r.Text(ColCauseCause),
		Value:   r.Number(ColCauseHours),
	}
}

// CauseTableRowFromRecord coerces a cause detail row.
func CauseTableRowFromRecord(r Record) CauseTableRow {
	return CauseTableRow{
		Project:     r.Text(ColCauseProject),
		Stage:       r.Text(ColCauseStage),
		Cause:       r.Text(ColCauseCause),
		Description: r.Text(ColCauseDescription),
		Hours:       r.Number(ColCauseHours),
	}
}

// ParseNumber accepts "12.5", "12,5" and "1.234,5". Anything else, NaN and
// infinities included, is 0.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return 0
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
