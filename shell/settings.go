package shell

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// settings holds the shell's user-adjustable display options.
type settings struct {
	HexUpper    bool `doc:"display addresses and words in uppercase hex"`
	PageSize    int  `doc:"number of rows shown per page by table commands"`
	ShowPending bool `doc:"show unresolved pending operands as '<pending>'"`
}

func newSettings() *settings {
	return &settings{
		HexUpper:    false,
		PageSize:    20,
		ShowPending: true,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	t := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, t.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := t.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

// Display writes every setting and its current value to w.
func (s *settings) Display(w io.Writer) {
	v := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		fv := v.Field(i)
		fmt.Fprintf(w, "%-16s %-8v (%s)\n", f.name, fv, f.doc)
	}
}

// Set parses value and assigns it to the setting named by key, which may
// be an unambiguous prefix of the setting's name.
func (s *settings) Set(key, value string) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	v := reflect.ValueOf(s).Elem().Field(f.index)
	switch f.kind {
	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int:
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
			return fmt.Errorf("invalid integer value %q", value)
		}
		v.SetInt(int64(n))
	default:
		return errors.New("unsupported setting type")
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q", s)
	}
}
