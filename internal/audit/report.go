package audit

import (
	"encoding/json"
	"io"
	"math"
	"unicode/utf8"
)

// Output caps. Each cap and sort key is part of the report contract, so
// downstream consumers see stable shapes across runs.
const (
	multiNameExamplesCap     = 10
	fullNameCollisionsCap    = 10
	firstNameCollisionsCap   = 20
	badNameExamplesCap       = 10
	badMessageSamplesCap     = 50
	perUserDuplicateUsersCap = 10
	perUserDuplicateTextsCap = 5
	crossUserDuplicatesCap   = 20
	duplicateIDExamplesCap   = 20
	phoneSamplesCap          = 10
	emailSamplesCap          = 10
	cardSamplesCap           = 5
	sharedContactsCap        = 20
	contradictionsCap        = 50
	cadenceFindingsCap       = 50
	languageShiftCap         = 50
	topWordsCap              = 25

	snippetRunes = 160
)

// Report is the terminal artifact of one analysis run: scalar summaries and
// capped finding lists keyed by category. Field order fixes the JSON key
// order of the emitted document.
type Report struct {
	Totals            Totals         `json:"totals"`
	Names             Names          `json:"names"`
	Encoding          Encoding       `json:"encoding"`
	Timestamps        Timestamps     `json:"timestamps"`
	Duplicates        Duplicates     `json:"duplicates"`
	PIISamples        PIISamples     `json:"pii_samples"`
	TopWords          []WordCount    `json:"top_words"`
	Integrity         Integrity      `json:"integrity"`
	PIICrossUserReuse PIIReuse       `json:"pii_cross_user_reuse"`
	Contradictions    Contradictions `json:"contradictions"`
	Cadence           Cadence        `json:"cadence"`
	Language          Language       `json:"language"`
}

type Totals struct {
	Messages         int     `json:"messages"`
	Users            int     `json:"users"`
	AvgMessageLength float64 `json:"avg_message_length"`
	MinMessageLength int     `json:"min_message_length"`
	MaxMessageLength int     `json:"max_message_length"`
}

type MultiNameUser struct {
	UserID string   `json:"user_id"`
	Names  []string `json:"names"`
}

type FullNameCollision struct {
	UserName string   `json:"user_name"`
	UserIDs  []string `json:"user_ids"`
}

type FirstNameCollision struct {
	First     string `json:"first"`
	UserCount int    `json:"user_count"`
}

type Names struct {
	MultiNameUserCount    int                  `json:"user_ids_with_multiple_names_count"`
	MultiNameUserExamples []MultiNameUser      `json:"user_ids_with_multiple_names_examples"`
	FullNameCollisions    int                  `json:"full_name_collisions_count"`
	FullNameExamples      []FullNameCollision  `json:"full_name_collisions_examples"`
	FirstNameCollisions   []FirstNameCollision `json:"first_name_collisions_top"`
}

type BadMessageSample struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Snippet  string `json:"snippet"`
}

type Encoding struct {
	BadNameCount      int                `json:"names_with_replacement_char_count"`
	BadNameExamples   []string           `json:"names_with_replacement_char_examples"`
	SampleBadMessages []BadMessageSample `json:"sample_bad_messages"`
}

type Timestamps struct {
	Unparsable          int `json:"unparsable"`
	FarFuture           int `json:"far_future_gt_1y"`
	FarPast             int `json:"far_past_lt_2010"`
	OutOfOrderUserCount int `json:"out_of_order_user_count"`
}

type TextCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

type UserDuplicates struct {
	UserID   string      `json:"user_id"`
	Examples []TextCount `json:"examples"`
}

type CrossUserText struct {
	Text      string `json:"text"`
	UserCount int    `json:"user_count"`
}

type Duplicates struct {
	PerUserExamples     []UserDuplicates `json:"per_user_duplicates_examples"`
	CrossUserTexts      []CrossUserText  `json:"cross_user_duplicate_texts"`
	DuplicateIDCount    int              `json:"duplicate_message_id_count"`
	DuplicateIDExamples []string         `json:"duplicate_message_id_examples"`
}

type PIISample struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Snippet string `json:"snippet"`
}

type PIISamples struct {
	PhoneLike      []PIISample `json:"phone_like"`
	EmailLike      []PIISample `json:"email_like"`
	CreditCardLike []PIISample `json:"credit_card_like"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type MissingFields struct {
	UserID    int `json:"missing_user_id"`
	UserName  int `json:"missing_user_name"`
	Timestamp int `json:"missing_timestamp"`
	Message   int `json:"missing_message"`
}

type Integrity struct {
	InvalidUserIDCount    int           `json:"invalid_user_id_count"`
	InvalidMessageIDCount int           `json:"invalid_message_id_count"`
	MissingFields         MissingFields `json:"missing_fields"`
}

type SharedPhone struct {
	Phone     string `json:"phone"`
	UserCount int    `json:"user_count"`
}

type SharedEmail struct {
	Email     string `json:"email"`
	UserCount int    `json:"user_count"`
}

type PIIReuse struct {
	SharedPhones []SharedPhone `json:"shared_phones"`
	SharedEmails []SharedEmail `json:"shared_emails"`
}

type SeatPreferenceFlip struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
}

type MultiCityDay struct {
	UserID string   `json:"user_id"`
	Date   string   `json:"date"`
	Cities []string `json:"cities"`
}

type Contradictions struct {
	SeatPreferenceFlips []SeatPreferenceFlip `json:"seat_preference_flips"`
	SameDayMultiCity    []MultiCityDay       `json:"same_day_multi_city"`
}

type CadenceFinding struct {
	UserID     string  `json:"user_id"`
	MeanGapSec float64 `json:"mean_gap_s"`
	CV         float64 `json:"cv"`
	Samples    int     `json:"samples"`
}

type Cadence struct {
	SuspiciousUsers []CadenceFinding `json:"suspicious_cadence_users"`
}

type ScriptShift struct {
	UserID        string  `json:"user_id"`
	MinASCIIRatio float64 `json:"min_ascii_ratio"`
	MaxASCIIRatio float64 `json:"max_ascii_ratio"`
}

type Language struct {
	ScriptShiftUsers []ScriptShift `json:"script_shift_users"`
}

// WriteJSON emits the report as indented UTF-8 JSON. HTML escaping is off so
// non-ASCII text survives verbatim, which the output contract requires.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// capped truncates a finding list to its cap and never returns nil, so empty
// categories serialize as [] rather than null.
func capped[T any](list []T, max int) []T {
	if len(list) > max {
		list = list[:max]
	}
	if list == nil {
		list = []T{}
	}
	return list
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func snippet(s string) string {
	if utf8.RuneCountInString(s) <= snippetRunes {
		return s
	}
	return string([]rune(s)[:snippetRunes])
}
