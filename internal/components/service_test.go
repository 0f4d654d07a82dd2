package components

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
	"github.com/Arthur-020/labstock-backend/pkg/logger"
)

type stubComponentsRepo struct {
	stored           map[int]*models.Component
	nextID           int
	createCalls      int
	deletedMovements []int
	deletedComponent []int
	lastReplaceImage bool
}

func newStubComponentsRepo() *stubComponentsRepo {
	return &stubComponentsRepo{stored: make(map[int]*models.Component), nextID: 1}
}

func (s *stubComponentsRepo) List(context.Context, string, *int) ([]Row, error) {
	return nil, nil
}

func (s *stubComponentsRepo) FindByID(_ context.Context, id int) (*models.Component, error) {
	component, ok := s.stored[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *component
	return &copied, nil
}

func (s *stubComponentsRepo) Create(_ context.Context, component *models.Component) (*models.Component, error) {
	s.createCalls++
	component.ID = s.nextID
	s.nextID++
	copied := *component
	s.stored[component.ID] = &copied
	return component, nil
}

func (s *stubComponentsRepo) Update(_ context.Context, component *models.Component, replaceImage bool) error {
	s.lastReplaceImage = replaceImage
	current, ok := s.stored[component.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	imageURL := current.ImageURL
	copied := *component
	if !replaceImage {
		copied.ImageURL = imageURL
	}
	s.stored[component.ID] = &copied
	return nil
}

func (s *stubComponentsRepo) DeleteMovementsTx(_ *gorm.DB, componentID int) error {
	s.deletedMovements = append(s.deletedMovements, componentID)
	return nil
}

func (s *stubComponentsRepo) DeleteComponentTx(_ *gorm.DB, id int) error {
	s.deletedComponent = append(s.deletedComponent, id)
	delete(s.stored, id)
	return nil
}

type stubTx struct{ calls int }

func (s *stubTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	return fn(&gorm.DB{})
}

type stubUploader struct {
	uploads   int
	destroys  []string
	uploadErr error
	returnURL string
}

func (s *stubUploader) Upload(context.Context, []byte, string) (string, error) {
	s.uploads++
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	return s.returnURL, nil
}

func (s *stubUploader) Destroy(_ context.Context, publicID string) error {
	s.destroys = append(s.destroys, publicID)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func newTestService(t *testing.T, repo *stubComponentsRepo, uploader *stubUploader) (Service, *stubTx) {
	t.Helper()
	tx := &stubTx{}
	svc, err := NewService(repo, tx, uploader, testLogger())
	require.NoError(t, err)
	return svc, tx
}

func TestServiceCreateUploadsImageBeforeInsert(t *testing.T) {
	repo := newStubComponentsRepo()
	uploader := &stubUploader{returnURL: "https://res.cloudinary.com/demo/image/upload/inventario/servo.jpg"}
	svc, _ := newTestService(t, repo, uploader)

	created, err := svc.Create(context.Background(), CreateInput{
		Name:     "Servo",
		Quantity: 3,
		Image:    []byte("bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, uploader.uploads)
	require.NotNil(t, created.ImageURL)
	assert.Equal(t, uploader.returnURL, *created.ImageURL)
}

func TestServiceCreateAbortsWhenUploadFails(t *testing.T) {
	repo := newStubComponentsRepo()
	uploader := &stubUploader{uploadErr: errors.New("cloudinary down")}
	svc, _ := newTestService(t, repo, uploader)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:     "Servo",
		Quantity: 3,
		Image:    []byte("bytes"),
	})
	require.Error(t, err)
	// no row was written: the upload happens first
	assert.Zero(t, repo.createCalls)
}

func TestServiceCreateWithoutImage(t *testing.T) {
	repo := newStubComponentsRepo()
	uploader := &stubUploader{}
	svc, _ := newTestService(t, repo, uploader)

	created, err := svc.Create(context.Background(), CreateInput{Name: "Resistencia", Quantity: 50})
	require.NoError(t, err)
	assert.Zero(t, uploader.uploads)
	assert.Nil(t, created.ImageURL)
}

func TestServiceCreateValidation(t *testing.T) {
	svc, _ := newTestService(t, newStubComponentsRepo(), &stubUploader{})

	_, err := svc.Create(context.Background(), CreateInput{Name: "   ", Quantity: 1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Create(context.Background(), CreateInput{Name: "Servo", Quantity: -1})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceGetForEditNotFound(t *testing.T) {
	svc, _ := newTestService(t, newStubComponentsRepo(), &stubUploader{})

	_, err := svc.GetForEdit(context.Background(), 42)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceUpdateKeepsImageWithoutNewUpload(t *testing.T) {
	repo := newStubComponentsRepo()
	uploader := &stubUploader{}
	svc, _ := newTestService(t, repo, uploader)

	url := "https://res.cloudinary.com/demo/image/upload/inventario/old.jpg"
	repo.stored[1] = &models.Component{ID: 1, Name: "LED", Quantity: 10, ImageURL: &url}
	repo.nextID = 2

	err := svc.Update(context.Background(), UpdateInput{ID: 1, Name: "LED rojo", Quantity: 8})
	require.NoError(t, err)
	assert.False(t, repo.lastReplaceImage)
	assert.Zero(t, uploader.uploads)
	require.NotNil(t, repo.stored[1].ImageURL)
	assert.Equal(t, url, *repo.stored[1].ImageURL)
	// the old asset stays hosted; only a delete removes it
	assert.Empty(t, uploader.destroys)
}

func TestServiceUpdateReplacesImage(t *testing.T) {
	repo := newStubComponentsRepo()
	uploader := &stubUploader{returnURL: "https://res.cloudinary.com/demo/image/upload/inventario/new.jpg"}
	svc, _ := newTestService(t, repo, uploader)

	url := "https://res.cloudinary.com/demo/image/upload/inventario/old.jpg"
	repo.stored[1] = &models.Component{ID: 1, Name: "LED", Quantity: 10, ImageURL: &url}
	repo.nextID = 2

	err := svc.Update(context.Background(), UpdateInput{ID: 1, Name: "LED", Quantity: 10, Image: []byte("new")})
	require.NoError(t, err)
	assert.True(t, repo.lastReplaceImage)
	require.NotNil(t, repo.stored[1].ImageURL)
	assert.Equal(t, uploader.returnURL, *repo.stored[1].ImageURL)
}

func TestServiceDeleteRemovesRowsThenDestroysImage(t *testing.T) {
	repo := newStubComponentsRepo()
	uploader := &stubUploader{}
	svc, tx := newTestService(t, repo, uploader)

	url := "https://res.cloudinary.com/demo/image/upload/inventario/servo.jpg"
	repo.stored[1] = &models.Component{ID: 1, Name: "Servo", Quantity: 3, ImageURL: &url}
	repo.nextID = 2

	require.NoError(t, svc.Delete(context.Background(), 1))

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, []int{1}, repo.deletedMovements)
	assert.Equal(t, []int{1}, repo.deletedComponent)
	assert.Equal(t, []string{"inventario/servo"}, uploader.destroys)
}

func TestServiceDeleteWithoutImageSkipsDestroy(t *testing.T) {
	repo := newStubComponentsRepo()
	uploader := &stubUploader{}
	svc, _ := newTestService(t, repo, uploader)

	repo.stored[1] = &models.Component{ID: 1, Name: "Protoboard", Quantity: 6}
	repo.nextID = 2

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, uploader.destroys)
}

func TestServiceDeleteUnknownURLSkipsDestroy(t *testing.T) {
	repo := newStubComponentsRepo()
	uploader := &stubUploader{}
	svc, _ := newTestService(t, repo, uploader)

	url := "https://example.com/static/servo.jpg"
	repo.stored[1] = &models.Component{ID: 1, Name: "Servo", Quantity: 3, ImageURL: &url}
	repo.nextID = 2

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, uploader.destroys)
}

func TestServiceDeleteNotFound(t *testing.T) {
	svc, _ := newTestService(t, newStubComponentsRepo(), &stubUploader{})

	err := svc.Delete(context.Background(), 42)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
