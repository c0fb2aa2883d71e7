package catalog

import (
	"bytes"
	"encoding/json"
)

// Podcast is one entry of the upstream catalog. When decoded from upstream
// the original bytes are kept in Raw and re-emitted unchanged by MarshalJSON;
// the typed fields are a best-effort view used by the GraphQL resolvers.
type Podcast struct {
	Raw json.RawMessage `json:"-" swaggerignore:"true"`


	ID              json.RawMessage `json:"id" swaggertype:"string"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	CategoryName    string          `json:"categoryName"`
	PublisherName   string          `json:"publisherName"`
	Images          PodcastImages   `json:"images"`
	IsExclusive     bool            `json:"isExclusive"`
	HasFreeEpisodes bool            `json:"hasFreeEpisodes"`
	MediaType       string          `json:"mediaType"`
}

// PodcastImages holds the artwork variants of a podcast
type PodcastImages struct {
	Default   string `json:"default"`
	Featured  string `json:"featured"`
	Thumbnail string `json:"thumbnail"`
	Wide      string `json:"wide"`
}

// IDString returns the podcast id as text. Upstream ids may be numbers or
// strings; both are rendered without quotes. A missing id yields "".
func (p Podcast) IDString() string {
	raw := bytes.TrimSpace(p.ID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// UnmarshalJSON keeps data as Raw and fills the typed fields that decode
// cleanly. A field of an unexpected type is left at its zero value instead of
// failing the element.
func (p *Podcast) UnmarshalJSON(data []byte) error {
	*p = Podcast{Raw: append(json.RawMessage(nil), data...)}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	p.ID = fields["id"]
	decodeField(fields, "title", &p.Title)
	decodeField(fields, "description", &p.Description)
	decodeField(fields, "categoryName", &p.CategoryName)
	decodeField(fields, "publisherName", &p.PublisherName)
	decodeField(fields, "images", &p.Images)
	decodeField(fields, "isExclusive", &p.IsExclusive)
	decodeField(fields, "hasFreeEpisodes", &p.HasFreeEpisodes)
	decodeField(fields, "mediaType", &p.MediaType)
	return nil
}

// MarshalJSON emits the upstream bytes when present, otherwise the typed
// fields.
func (p Podcast) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	type plain Podcast
	return json.Marshal(plain(p))
}

func decodeField(fields map[string]json.RawMessage, name string, dst interface{}) {
	if raw, ok := fields[name]; ok {
		_ = json.Unmarshal(raw, dst)
	}
}
