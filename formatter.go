package msgformat

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Params maps argument names to their values.
type Params map[string]interface{}

// Formatter renders parsed messages. It keeps no per-call state, so one
// Formatter can serve any number of concurrent renders.
type Formatter struct {
	localizer Localizer
	rules     Rules
}

// NewFormatter returns a Formatter. A nil localizer uses NewLocalizer(); nil
// rules behave as an empty registry, so the default rules apply everywhere.
func NewFormatter(localizer Localizer, rules Rules) *Formatter {
	if localizer == nil {
		localizer = NewLocalizer()
	}
	if rules == nil {
		rules = NewRuleSet()
	}
	return &Formatter{localizer: localizer, rules: rules}
}

// Render renders ast with params for locale. Only the branches actually
// selected are visited, so arguments referenced elsewhere need not be present.
func (f *Formatter) Render(ast AST, params Params, locale string) (string, error) {
	r := render{formatter: f, params: params, locale: locale}
	if err := r.nodes(ast, nil); err != nil {
		return "", err
	}
	return r.out.String(), nil
}

// render holds the state of a single Render call.
type render struct {
	formatter *Formatter
	params    Params
	locale    string
	out       strings.Builder
}

// hash is the replacement for '#' in the current plural context, nil outside one.
func (r *render) nodes(nodes []Node, hash *string) error {
	for _, n := range nodes {
		if err := r.node(n, hash); err != nil {
			return err
		}
	}
	return nil
}

func (r *render) node(n Node, hash *string) error {
	switch node := n.(type) {
	case Text:
		if hash != nil {
			r.out.WriteString(strings.ReplaceAll(node.Value, "#", *hash))
		} else {
			r.out.WriteString(node.Value)
		}
		return nil
	case Argument:
		value, err := r.argument(node.Name)
		if err != nil {
			return err
		}
		r.out.WriteString(naiveString(value))
		return nil
	case NumberFormat:
		return r.number(node)
	case DateFormat:
		return r.localized(node.Name, KindDate, node.Style)
	case TimeFormat:
		return r.localized(node.Name, KindTime, node.Style)
	case Plural:
		return r.plural("plural", node.Name, node.Offset, node.Branches, r.cardinal)
	case SelectOrdinal:
		return r.plural("selectordinal", node.Name, node.Offset, node.Branches, r.ordinal)
	case Select:
		return r.selectBranch(node)
	default:
		return fmt.Errorf("msgformat: unknown node type %T", n)
	}
}

func (r *render) argument(name string) (interface{}, error) {
	value, ok := r.params[name]
	if !ok {
		return nil, &MissingArgumentError{Name: name}
	}
	return value, nil
}

func (r *render) number(node NumberFormat) error {
	value, err := r.argument(node.Name)
	if err != nil {
		return err
	}
	formatted, err := r.formatter.localizer.Localize(value, r.locale, KindNumber, node.Style)
	if err != nil {
		if !errors.Is(err, ErrNoFormatData) {
			return err
		}
		formatted = naiveString(value)
	}
	r.out.WriteString(formatted)
	return nil
}

func (r *render) localized(name string, kind Kind, style string) error {
	value, err := r.argument(name)
	if err != nil {
		return err
	}
	formatted, err := r.formatter.localizer.Localize(value, r.locale, kind, style)
	if err != nil {
		return fmt.Errorf("msgformat: %s argument %s: %w", kind, name, err)
	}
	r.out.WriteString(formatted)
	return nil
}

func (r *render) plural(construct string, name string, offset int, branches Branches, categorize func(float64) string) error {
	value, err := r.argument(name)
	if err != nil {
		return err
	}
	v, ok := toFloat(value)
	if !ok {
		return &ArgumentTypeError{Name: name, Value: value}
	}
	effective := v - float64(offset)
	hash := formatNumber(effective)

	if v == math.Trunc(v) && math.Abs(v) < 1<<63 {
		if body, ok := branches.Get(ExactKey(int64(v))); ok {
			return r.nodes(body, &hash)
		}
	}

	category := BranchKey(categorize(effective))
	body, ok := branches.Get(category)
	if !ok {
		body, ok = branches.Get(CategoryOther)
	}
	if !ok {
		return &BranchError{Construct: construct, Name: name, Key: category}
	}
	return r.nodes(body, &hash)
}

// selectBranch renders the chosen body without a '#' replacement: only the
// direct text of a plural branch binds it.
func (r *render) selectBranch(node Select) error {
	value, err := r.argument(node.Name)
	if err != nil {
		return err
	}
	key := BranchKey(naiveString(value))
	body, ok := node.Branches.Get(key)
	if !ok {
		body, ok = node.Branches.Get(CategoryOther)
	}
	if !ok {
		return &BranchError{Construct: "select", Name: node.Name, Key: key}
	}
	return r.nodes(body, nil)
}

func (r *render) cardinal(n float64) string {
	if rule, ok := r.formatter.rules.CardinalRule(r.locale); ok {
		return rule(n)
	}
	return DefaultCardinalRule(n)
}

func (r *render) ordinal(n float64) string {
	if rule, ok := r.formatter.rules.OrdinalRule(r.locale); ok {
		return rule(n)
	}
	return DefaultOrdinalRule(n)
}

// naiveString is the locale-independent string form of an argument.
func naiveString(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float32:
		return formatNumber(float64(typed))
	case float64:
		return formatNumber(typed)
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(value)
	}
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func toFloat(value interface{}) (float64, bool) {
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint8:
		return float64(typed), true
	case uint16:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case float32:
		return float64(typed), true
	case float64:
		return typed, true
	default:
		return 0, false
	}
}
