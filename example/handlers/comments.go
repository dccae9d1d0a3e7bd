package handlers

import (
	"strings"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/pkg/orm"
	"github.com/dmitrymomot/awesome/pkg/paging"
)

type commentsInput struct {
	BlogID string `param:"id,required"`
	Page   string `param:"page"`
}

type createCommentInput struct {
	BlogID  string `param:"id,required"`
	UserID  string `param:"user_id,required"`
	Content string `param:"content,required"`
}

func (h *Handler) listComments(c awesome.Context, in commentsInput) (awesome.Data, error) {
	if _, err := h.getBlog(c, blogInput{ID: in.BlogID}); err != nil {
		return nil, err
	}
	page, comments, err := h.page(c, h.models.Comments, paging.ParseIndex(in.Page), "created_at desc",
		orm.Where("blog_id=?", in.BlogID),
	)
	if err != nil {
		return nil, err
	}
	return awesome.Data{"page": page, "comments": comments}, nil
}

func (h *Handler) createComment(c awesome.Context, in createCommentInput) (*orm.Instance, error) {
	if err := notEmpty("content", in.Content); err != nil {
		return nil, err
	}
	if _, err := h.getBlog(c, blogInput{ID: in.BlogID}); err != nil {
		return nil, err
	}
	user, err := h.findUser(c, "user_id", in.UserID)
	if err != nil {
		return nil, err
	}

	comment := h.models.Comments.New(orm.Record{
		"blog_id":    in.BlogID,
		"user_id":    user.Value("id"),
		"user_name":  user.Value("name"),
		"user_image": user.Value("image"),
		"content":    strings.TrimSpace(in.Content),
	})
	if err := comment.Save(c, h.db); err != nil {
		return nil, err
	}
	return comment, nil
}
