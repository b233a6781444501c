package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/domain/repository"
	"github.com/bakemart/backend/internal/notify"
	"github.com/bakemart/backend/pkg/helpers"
)

// ProductInput carries the listing fields a baker submits.
type ProductInput struct {
	Name        string
	Price       float64
	Description string
	Category    string
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	return nil
}

// ProductService owns product CRUD for bakers and browse/search for
// everyone. Mutations are scoped to the acting baker; which screens expose
// them is a routing concern, not a role check here.
type ProductService struct {
	Guard    *Guard
	Products repository.ProductRepository
	Notifier notify.Notifier
	Logger   *logrus.Logger

	GCS       *storage.Client
	GCSBucket string

	ES      *elasticsearch.Client
	ESIndex string
}

func NewProductService(guard *Guard, products repository.ProductRepository, notifier notify.Notifier, logger *logrus.Logger, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string) *ProductService {
	return &ProductService{
		Guard:     guard,
		Products:  products,
		Notifier:  notifier,
		Logger:    logger,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		ES:        es,
		ESIndex:   esIndex,
	}
}

// List returns the browse page's products, optionally filtered by category.
func (s *ProductService) List(ctx context.Context, category string) ([]entity.Product, error) {
	return s.Products.List(ctx, entity.NormalizeCategory(category))
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	return s.Products.GetByID(ctx, id)
}

// ListOwn returns the guarded caller's own listings, newest first.
func (s *ProductService) ListOwn(ctx context.Context, accessToken string) ([]entity.Product, error) {
	sess, err := s.Guard.Subject(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return s.Products.ListByBaker(ctx, sess.SubjectID)
}

func (s *ProductService) Create(ctx context.Context, accessToken string, in ProductInput) (*entity.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	sess, err := s.Guard.Subject(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	p := &entity.Product{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Category:    entity.NormalizeCategory(in.Category),
		BakerID:     sess.SubjectID,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		s.notifyFailure(ctx, sess.Email, "Failed to create product", err)
		return nil, err
	}
	_ = s.indexProduct(ctx, p)

	s.Notifier.Notify(ctx, notify.Notification{
		To:      sess.Email,
		Title:   "Product created",
		Message: "Your product has been created successfully.",
	})
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, accessToken, productID string, in ProductInput) (*entity.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	sess, err := s.Guard.Subject(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	p := &entity.Product{
		ID:          productID,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Category:    entity.NormalizeCategory(in.Category),
		BakerID:     sess.SubjectID,
	}
	if err := s.Products.Update(ctx, p); err != nil {
		s.notifyFailure(ctx, sess.Email, "Failed to update product", err)
		return nil, err
	}
	_ = s.indexProduct(ctx, p)

	s.Notifier.Notify(ctx, notify.Notification{
		To:      sess.Email,
		Title:   "Product updated",
		Message: "Your product has been updated successfully.",
	})
	return s.Products.GetByID(ctx, productID)
}

func (s *ProductService) Delete(ctx context.Context, accessToken, productID string) error {
	sess, err := s.Guard.Subject(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := s.Products.Delete(ctx, productID, sess.SubjectID); err != nil {
		s.notifyFailure(ctx, sess.Email, "Failed to delete product", err)
		return err
	}
	s.deleteFromIndex(ctx, productID)

	s.Notifier.Notify(ctx, notify.Notification{
		To:      sess.Email,
		Title:   "Product deleted",
		Message: "Your product has been deleted.",
	})
	return nil
}

// UploadImage stores a product image in GCS and records its public URL on
// the caller's own product.
func (s *ProductService) UploadImage(ctx context.Context, accessToken, productID string, r io.Reader, filename, contentType string) (string, error) {
	sess, err := s.Guard.Subject(ctx, accessToken)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", fmt.Errorf("%w: image storage not configured", ErrInvalidInput)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", sess.SubjectID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Products.SetImageURL(ctx, productID, sess.SubjectID, url); err != nil {
		return "", err
	}
	return url, nil
}

// Search queries the Elasticsearch product index over name, description and
// category. With no index configured it degrades to an empty result.
func (s *ProductService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description", "category"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *ProductService) indexProduct(ctx context.Context, p *entity.Product) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"price":       p.Price,
		"description": p.Description,
		"category":    p.Category,
		"baker_id":    p.BakerID,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
	return nil
}

func (s *ProductService) deleteFromIndex(ctx context.Context, productID string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: productID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if res, err := req.Do(c, s.ES); err == nil {
		_ = res.Body.Close()
	}
}

func (s *ProductService) notifyFailure(ctx context.Context, to, title string, err error) {
	if s.Logger != nil {
		s.Logger.WithError(err).Error(title)
	}
	s.Notifier.Notify(ctx, notify.Notification{
		To:          to,
		Title:       title,
		Message:     "An unexpected error occurred",
		Destructive: true,
	})
}
