package dataprocessing

import (
	"regexp"

	"aihwetl/pkg/contracts/domain"
)

// icdChapters maps the leading letter of an ICD-10-AM code to its chapter
// label. The two-letter chapters are expanded per letter; this is a
// first-letter approximation, which is all the publication's 3-character
// codes support.
var icdChapters = map[byte]string{
	'A': "A-B: Infectious diseases",
	'B': "A-B: Infectious diseases",
	'C': "C-D: Neoplasms",
	'D': "C-D: Neoplasms and blood disorders",
	'E': "E: Endocrine and metabolic",
	'F': "F: Mental and behavioural",
	'G': "G: Nervous system",
	'H': "H: Eye and ear",
	'I': "I: Circulatory system",
	'J': "J: Respiratory system",
	'K': "K: Digestive system",
	'L': "L: Skin and subcutaneous tissue",
	'M': "M: Musculoskeletal system",
	'N': "N: Genitourinary system",
	'O': "O: Pregnancy and childbirth",
	'P': "P: Perinatal conditions",
	'Q': "Q: Congenital malformations",
	'R': "R: Symptoms and signs",
	'S': "S-T: Injury and poisoning",
	'T': "S-T: Injury and poisoning",
	'U': "U: Special purposes",
	'V': "V-Y: External causes",
	'W': "V-Y: External causes",
	'X': "V-Y: External causes",
	'Y': "V-Y: External causes",
	'Z': "Z: Factors influencing health status",
}

const chapterOther = "Other"

// icdCodeRe matches a 3-character ICD-10 code, optionally extended
// ("A09", "S72.0", "A00-B99" all qualify by their leading code).
var icdCodeRe = regexp.MustCompile(`^[A-Z][0-9]{2}`)

// ICDChapter returns the chapter label for an ICD-10 code, or "Other" when
// the value does not look like a code.
func ICDChapter(code string) string {
	if !icdCodeRe.MatchString(code) {
		return chapterOther
	}
	if ch, ok := icdChapters[code[0]]; ok {
		return ch
	}
	return chapterOther
}

const (
	dimCategory           = "category"
	dimPrincipalDiagnosis = "principal_diagnosis"
)

// AnnotateChapters derives a "category" dimension from the records'
// principal-diagnosis codes when the sheet carries diagnosis codes but no
// category column of its own. Returns the dimension name list extended with
// "category" when the annotation applied, otherwise unchanged.
func AnnotateChapters(records []domain.SeparationRecord, dimensionNames []string) []string {
	hasDiagnosis, hasCategory := false, false
	for _, n := range dimensionNames {
		switch n {
		case dimPrincipalDiagnosis:
			hasDiagnosis = true
		case dimCategory:
			hasCategory = true
		}
	}
	if !hasDiagnosis || hasCategory {
		return dimensionNames
	}

	for i := range records {
		records[i].Dimensions[dimCategory] = ICDChapter(records[i].Dimensions[dimPrincipalDiagnosis])
	}
	return append(dimensionNames, dimCategory)
}
