package hours

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyActivityType(t *testing.T) {
	tests := []struct {
		label string
		want  Category
	}{
		{"Produtivas", CategoryProductive},
		{"  hora PRODUTIVA ", CategoryProductive},
		{"Improdutivas", CategoryUnproductive},
		{"Hora improdutiva - aguardando cliente", CategoryUnproductive},
		{"Não produtiva", CategoryUnproductive},
		{"Fora do escopo", CategoryOutOfScope},
		{"Atividade fora de escopo", CategoryOutOfScope},
		{"Translado", CategoryTransfer},
		{"Deslocamento ida", CategoryTransfer},
		{"Viagem", CategoryTransfer},
		{"Treinamento", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyActivityType(tt.label))
		})
	}
}

func TestIsUnproductive(t *testing.T) {
	assert.True(t, IsUnproductive(CategoryUnproductive))
	for _, c := range []Category{CategoryProductive, CategoryOutOfScope, CategoryTransfer, CategoryOther} {
		assert.False(t, IsUnproductive(c), string(c))
	}
}

func TestMapActivityToStage(t *testing.T) {
	tests := []struct {
		description string
		want        Stage
	}{
		{"Config A", StageParametrization},
		{"Parametrização do sistema", StageParametrization},
		{"PARAMETRIZACAO", StageParametrization},
		{"PTAF - Pré teste", StagePTAF},
		{"Pré-TAF", StagePTAF},
		{"TAF", StageTAF},
		{"Execução do TAF", StageTAF},
		{"Field Visit", StageFieldTechnician},
		{"Técnico de Campo", StageFieldTechnician},
		{"Visita técnica", StageFieldTechnician},
		{"TAC", StageTAC},
		{"Teste de aceitação em campo", StageTAC},
		{"Gestão do projeto", StageOther},
		{"Contato com cliente", StageOther},
		{"", StageOther},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, MapActivityToStage(tt.description))
		})
	}
}

func TestMapActivityToStage_SameForBothDatasets(t *testing.T) {
	plan := PlanRow{Project: "P1", Activity: "Config A"}
	entry := TimeEntryRow{Project: "P1", Activity: "  Config A "}
	f := DefaultFilterState().Apply(FieldProject, "P1").Apply(FieldStage, string(StageParametrization))

	assert.True(t, MatchPlanRow(plan, f))
	assert.True(t, MatchTimeEntryRow(entry, f))
}

func TestStageIsCanonical(t *testing.T) {
	for _, s := range Stages {
		assert.True(t, s.IsCanonical())
	}
	assert.False(t, StageOther.IsCanonical())
	assert.False(t, StageAll.IsCanonical())
}
