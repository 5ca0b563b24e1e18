package hours

import (
	"strings"
	"unicode"

	lo "github.com/samber/lo"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category is the semantic class of a raw activity-type label.
type Category string

const (
	CategoryProductive   Category = "Produtivas"
	CategoryUnproductive Category = "Improdutivas"
	CategoryOutOfScope   Category = "Fora do escopo"
	CategoryTransfer     Category = "Translado"
	CategoryOther        Category = "Outras"
)

// Stage is one of the canonical project phases used for grouping.
type Stage string

const (
	StageParametrization Stage = "Parametrização"
	StagePTAF            Stage = "PTAF"
	StageTAF             Stage = "TAF"
	StageFieldTechnician Stage = "Técnico Campo"
	StageTAC             Stage = "TAC"
	// StageOther collects descriptions no rule recognizes. It never reaches
	// stage-grouped output.
	StageOther Stage = "Outras"
	// StageAll is the wildcard stage selector.
	StageAll Stage = "todas"
)

// Stages is the canonical stage set in display order.
var Stages = []Stage{StageParametrization, StagePTAF, StageTAF, StageFieldTechnician, StageTAC}

// IsCanonical reports whether s belongs to Stages.
func (s Stage) IsCanonical() bool { return lo.Contains(Stages, s) }

type matcher func(normalized string) bool

type categoryRule struct {
	match    matcher
	category Category
}

type stageRule struct {
	match matcher
	stage Stage
}

// First match wins: "improdutiv" has to be tested before "produtiv".
var categoryRules = []categoryRule{
	{containsAny("fora do escopo", "fora de escopo", "extra escopo", "extraescopo"), CategoryOutOfScope},
	{containsAny("translado", "traslado", "deslocamento", "viagem"), CategoryTransfer},
	{containsAny("improdutiv", "nao produtiv"), CategoryUnproductive},
	{containsAny("produtiv"), CategoryProductive},
}

// PTAF before TAF, and TAC before the generic "campo" keyword.
var stageRules = []stageRule{
	{anyOf(hasWord("ptaf"), containsAny("pre-taf", "pre taf")), StagePTAF},
	{anyOf(hasWord("taf"), containsAny("aceitacao de fabrica", "aceitacao em fabrica")), StageTAF},
	{anyOf(hasWord("tac"), containsAny("aceitacao em campo", "aceitacao de campo", "comissionamento")), StageTAC},
	{containsAny("tecnico campo", "tecnico de campo", "campo", "field", "visita"), StageFieldTechnician},
	{containsAny("parametriz", "config"), StageParametrization},
}

// ClassifyActivityType maps a raw activity-type label to its category.
// Unmatched labels, the empty string included, fall into CategoryOther.
func ClassifyActivityType(raw string) Category {
	n := normalize(raw)
	for _, r := range categoryRules {
		if r.match(n) {
			return r.category
		}
	}
	return CategoryOther
}

// IsUnproductive gates which hours count toward the unproductive metric.
// Out-of-scope and transfer hours are deliberately not included.
func IsUnproductive(c Category) bool { return c == CategoryUnproductive }

// MapActivityToStage maps a free-text work-item description to a stage using
// keyword rules. Plan and time-entry descriptions go through the same rules.
func MapActivityToStage(description string) Stage {
	n := normalize(description)
	for _, r := range stageRules {
		if r.match(n) {
			return r.stage
		}
	}
	return StageOther
}

// IsActivityInStage reports whether description maps to stage.
func IsActivityInStage(description string, stage Stage) bool {
	return MapActivityToStage(description) == stage
}

// normalize lowercases, strips diacritics and collapses whitespace.
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

func containsAny(keywords ...string) matcher {
	return func(n string) bool {
		return lo.SomeBy(keywords, func(k string) bool { return strings.Contains(n, k) })
	}
}

func hasWord(words ...string) matcher {
	return func(n string) bool {
		tokens := strings.FieldsFunc(n, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		return len(lo.Intersect(tokens, words)) > 0
	}
}

func anyOf(ms ...matcher) matcher {
	return func(n string) bool {
		return lo.SomeBy(ms, func(m matcher) bool { return m(n) })
	}
}
