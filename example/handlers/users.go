package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"maps"
	"regexp"
	"strings"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/example/views"
	"github.com/dmitrymomot/awesome/pkg/id"
	"github.com/dmitrymomot/awesome/pkg/orm"
	"github.com/dmitrymomot/awesome/pkg/paging"
)

var (
	emailRe  = regexp.MustCompile(`^[a-z0-9.\-_]+@[a-z0-9\-_]+(\.[a-z0-9\-_]+){1,4}$`)
	passwdRe = regexp.MustCompile(`^[0-9a-f]{40}$`)
)

const maskedPasswd = "******"

type registerInput struct {
	Email  string `param:"email,required"`
	Name   string `param:"name,required"`
	Passwd string `param:"passwd,required"`
}

func (h *Handler) registerPage() awesome.Data {
	return awesome.Data{awesome.TemplateKey: views.Register}
}

// register creates a user. Passwd is the client side SHA1 hex digest of
// "email:password"; it is hashed again with the user id before storing.
func (h *Handler) register(c awesome.Context, in registerInput) (*orm.Instance, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		return nil, awesome.NewValueError("name", "Name cannot be empty.")
	}
	if !emailRe.MatchString(email) {
		return nil, awesome.NewValueError("email", "Invalid email.")
	}
	if !passwdRe.MatchString(in.Passwd) {
		return nil, awesome.NewValueError("passwd", "Invalid password.")
	}

	n, err := h.models.Users.Count(c, h.db, orm.Where("email=?", email))
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, awesome.NewAPIError("register:failed", "email", "Email is already in use.")
	}

	uid := id.Next()
	user := h.models.Users.New(orm.Record{
		"id":     uid,
		"email":  email,
		"name":   name,
		"passwd": hashPasswd(uid, in.Passwd),
	})
	if err := user.Save(c, h.db); err != nil {
		return nil, err
	}
	return masked(user), nil
}

func (h *Handler) listUsers(c awesome.Context, in pageInput) (awesome.Data, error) {
	page, users, err := h.page(c, h.models.Users, paging.ParseIndex(in.Page), "created_at desc")
	if err != nil {
		return nil, err
	}
	for i, u := range users {
		users[i] = masked(u)
	}
	return awesome.Data{"page": page, "users": users}, nil
}

func hashPasswd(uid, passwd string) string {
	sum := sha256.Sum256([]byte(uid + ":" + passwd))
	return hex.EncodeToString(sum[:])
}

// masked returns a copy of user with the password hidden.
func masked(user *orm.Instance) *orm.Instance {
	rec := maps.Clone(user.Record)
	rec["passwd"] = maskedPasswd
	return user.Model().New(rec)
}

// notEmpty returns a value error for the first blank field of name, value pairs.
func notEmpty(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return awesome.NewValueError(pairs[i], pairs[i]+" cannot be empty.")
		}
	}
	return nil
}

// findUser loads a user or reports a not found API error on field.
func (h *Handler) findUser(c awesome.Context, field, uid string) (*orm.Instance, error) {
	user, err := h.models.Users.Find(c, h.db, uid)
	if errors.Is(err, orm.ErrNotFound) {
		return nil, awesome.NewNotFoundError(field, "User not found.")
	}
	return user, err
}
