package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/store"
)

var (
	ErrTagExists   = errors.New("tag already exists")
	ErrTagNotFound = errors.New("tag not found")
	ErrTagInvalid  = errors.New("invalid tag")
)

var tagColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// TagService wraps tag related operations.
type TagService struct {
	store store.Store
}

// TagInput 定义创建/更新标签时的字段
type TagInput struct {
	Name  string
	Color string
}

// NewTagService creates a TagService instance.
func NewTagService(s store.Store) *TagService {
	return &TagService{store: s}
}

// List returns the user's tags ordered by name.
func (s *TagService) List(ctx context.Context, userID string) ([]db.Tag, error) {
	return s.store.ListTags(ctx, userID)
}

// Create 新建标签，同一用户下名称唯一（忽略大小写）
func (s *TagService) Create(ctx context.Context, userID string, input TagInput) (*db.Tag, error) {
	name, color, err := normalizeTagInput(input)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, userID, name, ""); err != nil {
		return nil, err
	}

	tag := db.Tag{UserID: userID, Name: name, Color: color}
	if err := s.store.CreateTag(ctx, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update 修改标签名称或颜色
func (s *TagService) Update(ctx context.Context, id string, input TagInput) (*db.Tag, error) {
	tag, err := s.store.GetTag(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrTagNotFound)
	}

	name, color, err := normalizeTagInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, tag.UserID, name, tag.ID); err != nil {
		return nil, err
	}

	tag.Name = name
	tag.Color = color
	if err := s.store.UpdateTag(ctx, tag); err != nil {
		return nil, translateNotFound(err, ErrTagNotFound)
	}
	return tag, nil
}

// Delete removes a tag.
func (s *TagService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTag(ctx, id); err != nil {
		return translateNotFound(err, ErrTagNotFound)
	}
	return nil
}

func (s *TagService) ensureUnique(ctx context.Context, userID, name, selfID string) error {
	tags, err := s.store.ListTags(ctx, userID)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		if tag.ID != selfID && strings.EqualFold(tag.Name, name) {
			return ErrTagExists
		}
	}
	return nil
}

func normalizeTagInput(input TagInput) (string, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", "", ErrTagInvalid
	}
	color := strings.TrimSpace(input.Color)
	if color != "" && !tagColorPattern.MatchString(color) {
		return "", "", ErrTagInvalid
	}
	return name, strings.ToLower(color), nil
}
