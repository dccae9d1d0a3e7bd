package handlers

import (
	"errors"
	"strings"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/example/views"
	"github.com/dmitrymomot/awesome/pkg/orm"
	"github.com/dmitrymomot/awesome/pkg/paging"
)

type pageInput struct {
	Page string `param:"page"`
}

type blogInput struct {
	ID string `param:"id,required"`
}

type createBlogInput struct {
	UserID  string `param:"user_id,required"`
	Name    string `param:"name,required"`
	Summary string `param:"summary,required"`
	Content string `param:"content,required"`
}

func (h *Handler) index(c awesome.Context, in pageInput) (awesome.Data, error) {
	page, blogs, err := h.blogsPage(c, paging.ParseIndex(in.Page))
	if err != nil {
		return nil, err
	}
	return awesome.Data{
		awesome.TemplateKey: views.Blogs,
		"page":              page,
		"blogs":             blogs,
	}, nil
}

func (h *Handler) showBlog(c awesome.Context, in blogInput) (awesome.Data, error) {
	blog, err := h.models.Blogs.Find(c, h.db, in.ID)
	if errors.Is(err, orm.ErrNotFound) {
		return awesome.Data{awesome.TemplateKey: views.Blog}, nil
	}
	if err != nil {
		return nil, err
	}
	comments, err := h.models.Comments.FindAll(c, h.db,
		orm.Where("blog_id=?", in.ID),
		orm.OrderBy("created_at desc"),
	)
	if err != nil {
		return nil, err
	}
	return awesome.Data{
		awesome.TemplateKey: views.Blog,
		"blog":              blog,
		"comments":          comments,
	}, nil
}

func (h *Handler) listBlogs(c awesome.Context, in pageInput) (awesome.Data, error) {
	page, blogs, err := h.blogsPage(c, paging.ParseIndex(in.Page))
	if err != nil {
		return nil, err
	}
	return awesome.Data{"page": page, "blogs": blogs}, nil
}

func (h *Handler) getBlog(c awesome.Context, in blogInput) (*orm.Instance, error) {
	blog, err := h.models.Blogs.Find(c, h.db, in.ID)
	if errors.Is(err, orm.ErrNotFound) {
		return nil, awesome.NewNotFoundError("blog", "Blog not found.")
	}
	return blog, err
}

func (h *Handler) createBlog(c awesome.Context, in createBlogInput) (*orm.Instance, error) {
	if err := notEmpty("name", in.Name, "summary", in.Summary, "content", in.Content); err != nil {
		return nil, err
	}
	user, err := h.findUser(c, "user_id", in.UserID)
	if err != nil {
		return nil, err
	}

	blog := h.models.Blogs.New(orm.Record{
		"user_id":    user.Value("id"),
		"user_name":  user.Value("name"),
		"user_image": user.Value("image"),
		"name":       strings.TrimSpace(in.Name),
		"summary":    strings.TrimSpace(in.Summary),
		"content":    strings.TrimSpace(in.Content),
	})
	if err := blog.Save(c, h.db); err != nil {
		return nil, err
	}
	return blog, nil
}

// deleteBlog removes a blog and its comments in one transaction.
func (h *Handler) deleteBlog(c awesome.Context, in blogInput) (awesome.Data, error) {
	blog, err := h.models.Blogs.Find(c, h.db, in.ID)
	if errors.Is(err, orm.ErrNotFound) {
		return nil, awesome.NewNotFoundError("blog", "Blog not found.")
	}
	if err != nil {
		return nil, err
	}

	err = h.db.Tx(c, func(tx *orm.DB) error {
		comments, err := h.models.Comments.FindAll(c, tx, orm.Where("blog_id=?", in.ID))
		if err != nil {
			return err
		}
		for _, comment := range comments {
			if err := comment.Remove(c, tx); err != nil {
				return err
			}
		}
		return blog.Remove(c, tx)
	})
	if err != nil {
		return nil, err
	}
	return awesome.Data{"id": in.ID}, nil
}

// blogsPage selects one page of blogs, newest first.
func (h *Handler) blogsPage(c awesome.Context, index int) (paging.Page, []*orm.Instance, error) {
	return h.page(c, h.models.Blogs, index, "created_at desc")
}

// page counts the rows matching filter and selects page index of them.
func (h *Handler) page(c awesome.Context, m *orm.Model, index int, order string, filter ...orm.QueryOption) (paging.Page, []*orm.Instance, error) {
	count, err := m.Count(c, h.db, filter...)
	if err != nil {
		return paging.Page{}, nil, err
	}
	page := paging.New(count, index, PageSize)
	if page.Empty() {
		return page, []*orm.Instance{}, nil
	}
	opts := append(filter, orm.OrderBy(order), orm.LimitOffset(page.Offset, page.Limit))
	items, err := m.FindAll(c, h.db, opts...)
	if err != nil {
		return paging.Page{}, nil, err
	}
	return page, items, nil
}
