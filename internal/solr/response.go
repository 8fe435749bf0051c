package solr

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/facet"
)

// ErrMalformedResponse is returned for response bodies that are not a JSON object.
var ErrMalformedResponse = errors.New("malformed solr response")

// Error is an error reported by Solr itself.
type Error struct {
	Code int    `mapstructure:"code"`
	Msg  string `mapstructure:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d - %s", e.Code, e.Msg)
}

type ResponseHeader struct {
	Status int                    `mapstructure:"status"`
	QTime  int                    `mapstructure:"QTime"`
	Params map[string]interface{} `mapstructure:"params"`
}

// Document is one search result, keyed by stored field name.
type Document map[string]interface{}

// RecordCollection is a decoded Solr search response.
type RecordCollection struct {
	Header    ResponseHeader
	Total     int
	Start     int
	MaxScore  float64
	ElapsedMS int64

	body gjson.Result
}

// NewRecordCollection decodes a Solr JSON response body. A body carrying a
// non-zero status is decoded, and returned along with a *Error.
func NewRecordCollection(body []byte) (*RecordCollection, error) {
	if gjson.ValidBytes(body) == false {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformedResponse)
	}

	res := gjson.ParseBytes(body)
	if res.IsObject() == false {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrMalformedResponse, res.Type.String())
	}

	r := RecordCollection{
		Total:    int(res.Get("response.numFound").Int()),
		Start:    int(res.Get("response.start").Int()),
		MaxScore: res.Get("response.maxScore").Float(),
		body:     res,
	}

	if header := res.Get("responseHeader"); header.Exists() == true {
		if err := decode(header.Value(), &r.Header); err != nil {
			return nil, fmt.Errorf("%w: response header: %s", ErrMalformedResponse, err.Error())
		}
	}

	if r.Header.Status != 0 || res.Get("error").Exists() == true {
		solrErr := Error{Code: r.Header.Status}

		if block := res.Get("error"); block.Exists() == true {
			decode(block.Value(), &solrErr)
		}

		return &r, &solrErr
	}

	return &r, nil
}

func decode(input interface{}, output interface{}) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           output,
		WeaklyTypedInput: true,
		ZeroFields:       true,
	}

	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return dec.Decode(input)
}

// Docs returns the result documents.
func (r *RecordCollection) Docs() ([]Document, error) {
	docs := []Document{}

	raw := r.body.Get("response.docs")
	if raw.Exists() == false {
		return docs, nil
	}

	if err := decode(raw.Value(), &docs); err != nil {
		return nil, fmt.Errorf("%w: documents: %s", ErrMalformedResponse, err.Error())
	}

	return docs, nil
}

// FacetFields returns the fields that have facet counts, in response order.
func (r *RecordCollection) FacetFields() []string {
	var fields []string

	r.body.Get("facet_counts.facet_fields").ForEach(func(key, _ gjson.Result) bool {
		fields = append(fields, key.String())
		return true
	})

	return fields
}

// FieldFacetCounts returns the counts reported for field, in response order.
// Any json.nl style Solr can emit is understood: flat, map, arrarr and arrmap.
func (r *RecordCollection) FieldFacetCounts(field string) ([]facet.Count, bool) {
	var node gjson.Result

	// field names may contain path metacharacters, so no gjson path lookup
	r.body.Get("facet_counts.facet_fields").ForEach(func(key, val gjson.Result) bool {
		if key.String() == field {
			node = val
			return false
		}
		return true
	})

	if node.Exists() == false {
		return nil, false
	}

	counts := []facet.Count{}

	add := func(value, count gjson.Result) {
		// facet.missing reports its bucket under a null value
		if value.Type == gjson.Null {
			return
		}

		counts = append(counts, facet.Count{Value: value.String(), Count: int(count.Int())})
	}

	switch {
	case node.IsObject():
		node.ForEach(func(key, val gjson.Result) bool {
			add(key, val)
			return true
		})

	case node.IsArray():
		items := node.Array()

		for i := 0; i < len(items); i++ {
			item := items[i]

			switch {
			case item.IsArray():
				pair := item.Array()
				if len(pair) == 2 {
					add(pair[0], pair[1])
				}

			case item.IsObject():
				item.ForEach(func(key, val gjson.Result) bool {
					add(key, val)
					return true
				})

			default:
				if i+1 < len(items) {
					add(item, items[i+1])
				}
				i++
			}
		}
	}

	return counts, true
}
