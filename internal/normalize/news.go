package normalize

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/events"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/payload"
)

// news resolves the provider's news union. ESPN sends either a bare array of
// articles or an object wrapping {"articles": [...]}; both become []NewsItem.
func (n *Normalizer) news(raw json.RawMessage, eventID string) []events.NewsItem {
	out := []events.NewsItem{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return out
	}

	var articles []payload.Article
	var err error
	switch trimmed[0] {
	case '[':
		err = json.Unmarshal(trimmed, &articles)
	case '{':
		var wrapped struct {
			Articles []payload.Article `json:"articles"`
		}
		err = json.Unmarshal(trimmed, &wrapped)
		articles = wrapped.Articles
	default:
		logging.Debug(n.logger, "unrecognized news shape", slog.String(logging.FieldEventID, eventID))
		return out
	}
	if err != nil {
		logging.Debug(n.logger, "undecodable news payload",
			slog.String(logging.FieldEventID, eventID),
			slog.Any(logging.FieldError, err),
		)
		return out
	}

	for _, a := range articles {
		item := events.NewsItem{
			ID:          a.ID.String(),
			Headline:    a.Headline,
			Description: a.Description,
			Published:   a.Published,
			Link:        a.Links.Web.Href,
		}
		if len(a.Images) > 0 {
			item.ImageURL = a.Images[0].Href
		}
		out = append(out, item)
	}
	return out
}
