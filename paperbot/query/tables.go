package query

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	DefaultResultCount         = 10
	ResultCountLimit           = 1000
	DefaultTimezoneOffsetHours = -9
)

// SortCriterion selects how the archive orders results.
type SortCriterion int

const (
	SortSubmittedDate SortCriterion = iota
	SortRelevance
	SortLastUpdated
)

func (c SortCriterion) String() string {
	switch c {
	case SortSubmittedDate:
		return "Submitted Date"
	case SortRelevance:
		return "Relevance"
	case SortLastUpdated:
		return "Last Updated"
	default:
		return "?"
	}
}

// Code returns the stable short form used for persistence.
func (c SortCriterion) Code() string {
	switch c {
	case SortSubmittedDate:
		return "submitted"
	case SortRelevance:
		return "relevance"
	case SortLastUpdated:
		return "last_updated"
	default:
		return "?"
	}
}

// SortCriterionFromCode is the inverse of Code.
func SortCriterionFromCode(code string) (SortCriterion, error) {
	switch code {
	case "submitted":
		return SortSubmittedDate, nil
	case "relevance":
		return SortRelevance, nil
	case "last_updated":
		return SortLastUpdated, nil
	default:
		return 0, fmt.Errorf("unknown sort criterion code: %s", code)
	}
}

// SortOrder is the direction of the sort.
type SortOrder int

const (
	SortDescending SortOrder = iota
	SortAscending
)

func (o SortOrder) String() string {
	if o == SortAscending {
		return "Ascending"
	}
	return "Descending"
}

// Code returns the stable short form used for persistence.
func (o SortOrder) Code() string {
	if o == SortAscending {
		return "asc"
	}
	return "desc"
}

// SortOrderFromCode is the inverse of Code.
func SortOrderFromCode(code string) (SortOrder, error) {
	switch code {
	case "asc":
		return SortAscending, nil
	case "desc":
		return SortDescending, nil
	default:
		return 0, fmt.Errorf("unknown sort order code: %s", code)
	}
}

// SortSpec pairs a criterion with a direction.
type SortSpec struct {
	By    SortCriterion
	Order SortOrder
}

// SortCodes maps the one- and two-letter sort specifiers to their meaning.
// Single-letter forms default to descending.
var SortCodes = map[string]SortSpec{
	"s":  {SortSubmittedDate, SortDescending},
	"sd": {SortSubmittedDate, SortDescending},
	"sa": {SortSubmittedDate, SortAscending},
	"r":  {SortRelevance, SortDescending},
	"rd": {SortRelevance, SortDescending},
	"ra": {SortRelevance, SortAscending},
	"l":  {SortLastUpdated, SortDescending},
	"ld": {SortLastUpdated, SortDescending},
	"la": {SortLastUpdated, SortAscending},
}

// FieldSigils maps the single-character field sigils to fields.
var FieldSigils = map[rune]Field{
	'@': FieldAuthor,
	'#': FieldCategory,
	'$': FieldAbstract,
	'*': FieldAll,
}

// FieldByPrefix maps the recognized archive prefixes to fields. Explicit
// prefixes outside this set are rejected at transform time.
var FieldByPrefix = map[string]Field{
	"ti":  FieldTitle,
	"au":  FieldAuthor,
	"cat": FieldCategory,
	"abs": FieldAbstract,
	"all": FieldAll,
}

// CategoryAliases expands a bare archive group to its wildcard form.
var CategoryAliases = map[string]string{
	"cs":      "cs.*",
	"physics": "physics.*",
	"math":    "math.*",
	"stat":    "stat.*",
	"econ":    "econ.*",
	"q-bio":   "q-bio.*",
	"q-fin":   "q-fin.*",
}

// CategoryCaseMap corrects a lowercased category to its canonical archive
// spelling. Values absent from the map pass through lowercased.
var CategoryCaseMap = map[string]string{
	// Computer science
	"cs.ai": "cs.AI",
	"cs.ar": "cs.AR",
	"cs.cc": "cs.CC",
	"cs.ce": "cs.CE",
	"cs.cg": "cs.CG",
	"cs.cl": "cs.CL",
	"cs.cr": "cs.CR",
	"cs.cv": "cs.CV",
	"cs.cy": "cs.CY",
	"cs.db": "cs.DB",
	"cs.dc": "cs.DC",
	"cs.dl": "cs.DL",
	"cs.dm": "cs.DM",
	"cs.ds": "cs.DS",
	"cs.et": "cs.ET",
	"cs.fl": "cs.FL",
	"cs.gl": "cs.GL",
	"cs.gr": "cs.GR",
	"cs.gt": "cs.GT",
	"cs.hc": "cs.HC",
	"cs.ir": "cs.IR",
	"cs.it": "cs.IT",
	"cs.lg": "cs.LG",
	"cs.lo": "cs.LO",
	"cs.ma": "cs.MA",
	"cs.mm": "cs.MM",
	"cs.ms": "cs.MS",
	"cs.na": "cs.NA",
	"cs.ne": "cs.NE",
	"cs.ni": "cs.NI",
	"cs.oh": "cs.OH",
	"cs.os": "cs.OS",
	"cs.pf": "cs.PF",
	"cs.pl": "cs.PL",
	"cs.ro": "cs.RO",
	"cs.sc": "cs.SC",
	"cs.sd": "cs.SD",
	"cs.se": "cs.SE",
	"cs.si": "cs.SI",
	"cs.sy": "cs.SY",
	// Statistics
	"stat.ap": "stat.AP",
	"stat.co": "stat.CO",
	"stat.me": "stat.ME",
	"stat.ml": "stat.ML",
	"stat.ot": "stat.OT",
	"stat.th": "stat.TH",
	// Mathematics
	"math.ac": "math.AC",
	"math.ag": "math.AG",
	"math.ap": "math.AP",
	"math.at": "math.AT",
	"math.ca": "math.CA",
	"math.co": "math.CO",
	"math.ct": "math.CT",
	"math.cv": "math.CV",
	"math.dg": "math.DG",
	"math.ds": "math.DS",
	"math.fa": "math.FA",
	"math.gm": "math.GM",
	"math.gn": "math.GN",
	"math.gr": "math.GR",
	"math.gt": "math.GT",
	"math.ho": "math.HO",
	"math.it": "math.IT",
	"math.kt": "math.KT",
	"math.lo": "math.LO",
	"math.mg": "math.MG",
	"math.mp": "math.MP",
	"math.na": "math.NA",
	"math.nt": "math.NT",
	"math.oa": "math.OA",
	"math.oc": "math.OC",
	"math.pr": "math.PR",
	"math.qa": "math.QA",
	"math.ra": "math.RA",
	"math.rt": "math.RT",
	"math.sg": "math.SG",
	"math.sp": "math.SP",
	"math.st": "math.ST",
	// Already-canonical spellings the archive uses as-is
	"quant-ph":       "quant-ph",
	"physics.optics": "physics.optics",
}

// categoryPattern admits archive-shaped category names, optionally with a
// trailing wildcard, so normalized output stays a fixed point.
var categoryPattern = regexp.MustCompile(`^[a-z]+[-.]?[a-z]*(\.\*)?$`)

// NormalizeCategory lowercases a category value, expands group aliases,
// and corrects casing against the canonical table. Unknown values must
// still look like an archive category.
func NormalizeCategory(value string) (string, error) {
	lower := strings.ToLower(value)
	if alias, ok := CategoryAliases[lower]; ok {
		return alias, nil
	}
	if canon, ok := CategoryCaseMap[lower]; ok {
		return canon, nil
	}
	if !categoryPattern.MatchString(lower) {
		return "", &TransformError{Message: "Category not found: " + value}
	}
	return lower, nil
}
