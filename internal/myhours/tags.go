package myhours

import (
	"context"
	"net/http"

	"github.com/Tiliavir/myhours-cli/internal/model"
)

// DefaultTagColor is used for tags created on demand.
const DefaultTagColor = "#007bff"

type tagsResponse struct {
	Data []model.Tag `json:"data"`
}

type createTagRequest struct {
	Name     string `json:"name"`
	HexColor string `json:"hexColor"`
}

// ListTags returns all non-archived tags.
func (c *Client) ListTags(ctx context.Context) ([]model.Tag, error) {
	var resp tagsResponse
	err := c.do(ctx, c.authorized, request{
		op:     "list tags",
		method: http.MethodGet,
		path:   "/tags?hideArchived=true",
		want:   http.StatusOK,
		kind:   model.ErrRemote,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateTag creates a tag with the given name and colour.
func (c *Client) CreateTag(ctx context.Context, name, hexColor string) (model.Tag, error) {
	if hexColor == "" {
		hexColor = DefaultTagColor
	}
	var tag model.Tag
	err := c.do(ctx, c.authorized, request{
		op:     "create tag",
		method: http.MethodPost,
		path:   "/tags",
		body:   createTagRequest{Name: name, HexColor: hexColor},
		want:   http.StatusCreated,
		kind:   model.ErrRemote,
	}, &tag)
	if err != nil {
		return model.Tag{}, err
	}
	return tag, nil
}
