package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "tzzbcli/internal/errors"
	"tzzbcli/pkg/contracts/domain"
)

// Parser variants selectable per file.
const (
	// VariantHTSC is the fixed 20-column HTSC delivery-order export.
	VariantHTSC = "HTSC"
	// VariantHTSCFlex is the title-driven export where columns are located
	// by header name instead of position.
	VariantHTSCFlex = "HTSC-FLEX"
)

// MappedLine is the Column Mapper output for one export line, before the
// ledger settles the quantity sign and running balance.
type MappedLine struct {
	Order domain.DeliveryOrder

	// Magnitude is the non-negative traded quantity. The sign convention is
	// the ledger's business: sells subtract, everything else adds.
	Magnitude    int64
	HasMagnitude bool

	// VendorRemaining is the vendor-reported remaining quantity used to
	// cross-check the locally computed running balance.
	VendorRemaining    int64
	HasVendorRemaining bool
}

// RowMapper maps one decoded export line onto a delivery order.
type RowMapper interface {
	MapLine(line string) (*MappedLine, error)
}

// NewMapper validates the file's title row and returns the mapper for the
// given parser variant. A title row that does not satisfy the variant's
// contract is a FormatMismatch, fatal for that file only.
func NewMapper(variant, titleLine string, classifier *Classifier) (RowMapper, error) {
	switch variant {
	case VariantHTSC:
		return newHTSCMapper(titleLine, classifier)
	case VariantHTSCFlex:
		return newFlexMapper(titleLine, classifier)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown file type: %s", variant), nil)
	}
}

// htscTitles is the expected title row of the fixed HTSC export, in order.
var htscTitles = []string{
	"发生日期",
	"备注",
	"证券代码",
	"证券名称",
	"买卖标志",
	"成交数量",
	"成交价格",
	"成交金额",
	"佣金",
	"印花税",
	"过户费",
	"发生金额",
	"剩余金额",
	"申报序号",
	"股东代码",
	"席位代码",
	"委托编号",
	"成交编号",
	"证券数量",
	"其他费",
}

// Meaningful positions within the fixed HTSC layout.
const (
	htscDate            = 0
	htscCode            = 2
	htscName            = 3
	htscFlag            = 4
	htscQuantity        = 5
	htscPrice           = 6
	htscAmount          = 11
	htscVendorRemaining = 18
)

// htscMapper implements the fixed positional HTSC schema.
type htscMapper struct {
	classifier *Classifier
}

func newHTSCMapper(titleLine string, classifier *Classifier) (*htscMapper, error) {
	titles := splitColumns(titleLine)
	if len(titles) != len(htscTitles) {
		return nil, apperrors.NewFormatMismatch(
			fmt.Sprintf("expected %d title columns, got %d", len(htscTitles), len(titles)), nil).
			WithContext("variant", VariantHTSC)
	}
	for i, want := range htscTitles {
		if titles[i] != want {
			return nil, apperrors.NewFormatMismatch(
				fmt.Sprintf("title column %d is %q, expected %q", i, titles[i], want), nil).
				WithContext("variant", VariantHTSC)
		}
	}
	return &htscMapper{classifier: classifier}, nil
}

func (m *htscMapper) MapLine(line string) (*MappedLine, error) {
	fields := splitColumns(line)
	if len(fields) != len(htscTitles) {
		return nil, apperrors.NewFormatMismatch(
			fmt.Sprintf("expected %d columns, got %d", len(htscTitles), len(fields)), nil).
			WithContext("variant", VariantHTSC)
	}

	flag := fields[htscFlag]
	action := m.classifier.Classify(flag)

	mapped := &MappedLine{
		Order: domain.DeliveryOrder{
			Date:         fields[htscDate],
			SecurityCode: fields[htscCode],
			SecurityName: fields[htscName],
			Action:       action,
			// The fixed layout carries a ready-made buy/sell flag; it is
			// copied verbatim as the display label.
			ActionLabel: flag,
			Price:       fields[htscPrice],
			Amount:      fields[htscAmount],
		},
	}

	if err := mapped.setMagnitude(fields[htscQuantity]); err != nil {
		return nil, err
	}
	mapped.setVendorRemaining(fields[htscVendorRemaining])

	return mapped, nil
}

// columnRole identifies what a flexible-schema column feeds.
type columnRole int

const (
	roleIgnore columnRole = iota
	roleDate
	roleCode
	roleName
	roleQuantity
	roleVendorRemaining
	rolePrice
	roleAmount
	roleBusinessType
)

// roleForTitle matches one column name against the synonym table. Unknown
// columns map to roleIgnore.
func roleForTitle(title string) columnRole {
	switch strings.TrimSpace(title) {
	case "发生日期", "日期":
		return roleDate
	case "证券代码":
		return roleCode
	case "证券名称":
		return roleName
	case "成交数量", "发生数量":
		return roleQuantity
	case "证券数量":
		return roleVendorRemaining
	case "成交价格", "成交均价":
		return rolePrice
	case "发生金额", "成交金额":
		return roleAmount
	case "业务名称", "业务标志":
		return roleBusinessType
	default:
		return roleIgnore
	}
}

// flexMapper implements the title-driven schema: each column is located by
// its header name, position is irrelevant.
type flexMapper struct {
	roles      []columnRole
	classifier *Classifier
}

func newFlexMapper(titleLine string, classifier *Classifier) (*flexMapper, error) {
	titles := splitColumns(titleLine)
	if len(titles) == 0 || (len(titles) == 1 && titles[0] == "") {
		return nil, apperrors.NewFormatMismatch("empty title row", nil).
			WithContext("variant", VariantHTSCFlex)
	}

	roles := make([]columnRole, len(titles))
	known := 0
	for i, title := range titles {
		roles[i] = roleForTitle(title)
		if roles[i] != roleIgnore {
			known++
		}
	}
	if known == 0 {
		return nil, apperrors.NewFormatMismatch("title row contains no recognized columns", nil).
			WithContext("variant", VariantHTSCFlex)
	}

	return &flexMapper{roles: roles, classifier: classifier}, nil
}

func (m *flexMapper) MapLine(line string) (*MappedLine, error) {
	fields := splitColumns(line)
	if len(fields) != len(m.roles) {
		return nil, apperrors.NewFormatMismatch(
			fmt.Sprintf("expected %d columns, got %d", len(m.roles), len(fields)), nil).
			WithContext("variant", VariantHTSCFlex)
	}

	mapped := &MappedLine{}
	for i, value := range fields {
		switch m.roles[i] {
		case roleDate:
			mapped.Order.Date = value
		case roleCode:
			mapped.Order.SecurityCode = value
		case roleName:
			mapped.Order.SecurityName = value
		case roleQuantity:
			if err := mapped.setMagnitude(value); err != nil {
				return nil, err
			}
		case roleVendorRemaining:
			mapped.setVendorRemaining(value)
		case rolePrice:
			mapped.Order.Price = value
		case roleAmount:
			mapped.Order.Amount = value
		case roleBusinessType:
			mapped.Order.Action = m.classifier.Classify(value)
		}
	}

	if mapped.Order.Action == "" {
		mapped.Order.Action = domain.ActionIgnore
	}
	mapped.Order.ActionLabel = mapped.Order.Action.Label()

	return mapped, nil
}

// setMagnitude parses the traded quantity as the absolute value of a decimal
// token. Vendors emit integer counts as float text ("100.0").
func (ml *MappedLine) setMagnitude(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return apperrors.NewParseError(fmt.Sprintf("quantity %q is not numeric", text), err)
	}
	// ParseFloat accepts "NaN" and "Inf"; neither those nor anything past
	// the int64 range has an integer magnitude.
	abs := math.Abs(value)
	if math.IsNaN(abs) || abs >= 1<<63 {
		return apperrors.NewParseError(fmt.Sprintf("quantity %q is out of range", text), nil)
	}
	ml.Magnitude = int64(abs)
	ml.HasMagnitude = true
	return nil
}

// setVendorRemaining parses the vendor-reported remaining quantity. The
// value only feeds the advisory ledger cross-check, so unparseable text
// just disables the check for this line.
func (ml *MappedLine) setVendorRemaining(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.Abs(value) >= 1<<63 {
		return
	}
	ml.VendorRemaining = int64(value)
	ml.HasVendorRemaining = true
}

// splitColumns splits one export line into its tab-separated fields.
func splitColumns(line string) []string {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
