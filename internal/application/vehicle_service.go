package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
	"github.com/garagemlabs/garagem-api/internal/domain/policy"
	"github.com/garagemlabs/garagem-api/internal/domain/repository"
	"github.com/garagemlabs/garagem-api/internal/errs"
	"github.com/garagemlabs/garagem-api/pkg/helpers"
	"github.com/garagemlabs/garagem-api/pkg/mailer"
)

const publicGalleryCacheKey = "vehicles:public"

// VehicleService implements the vehicle use cases: CRUD, sharing, privacy
// toggling, photo upload and the public gallery. Authorization decisions are
// delegated to the policy package; the service translates denials into
// errs.ErrNotFound (subject may not even see the vehicle) or
// errs.ErrForbidden (subject can see it but not act on it).
type VehicleService struct {
	Vehicles repository.VehicleRepository
	Users    repository.UserRepository
	Logger   *logrus.Logger

	RDB      *redis.Client
	CacheTTL time.Duration

	ES      *elasticsearch.Client
	ESIndex string

	GCS       *storage.Client
	GCSBucket string

	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewVehicleService(vehicles repository.VehicleRepository, users repository.UserRepository, logger *logrus.Logger) *VehicleService {
	return &VehicleService{Vehicles: vehicles, Users: users, Logger: logger}
}

type CreateVehicleInput struct {
	Modelo string
	Placa  string
	Ano    int
	Cor    string
}

// NormalizePlate uppercases and trims a license plate so uniqueness is
// case-insensitive.
func NormalizePlate(placa string) string {
	return strings.ToUpper(strings.TrimSpace(placa))
}

// Create registers a vehicle under ownerID. New vehicles start private with
// an empty shared set.
func (s *VehicleService) Create(ctx context.Context, ownerID string, in CreateVehicleInput) (*entity.Vehicle, error) {
	v := &entity.Vehicle{
		Modelo:  strings.TrimSpace(in.Modelo),
		Placa:   NormalizePlate(in.Placa),
		Ano:     in.Ano,
		Cor:     strings.TrimSpace(in.Cor),
		OwnerID: ownerID,
	}
	if err := s.Vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"vehicle_id": v.ID, "owner_id": ownerID}).Info("vehicle created")
	return v, nil
}

// Get returns the vehicle with its owner projection when the subject may view
// it. Subjects that may not view it get errs.ErrNotFound so the vehicle's
// existence is not revealed.
func (s *VehicleService) Get(ctx context.Context, sub policy.Subject, id string) (*entity.VehicleWithOwner, error) {
	vw, err := s.Vehicles.GetWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(sub, &vw.Vehicle) {
		return nil, errs.ErrNotFound
	}
	return vw, nil
}

// ListMine returns vehicles the user owns or that were shared with them.
func (s *VehicleService) ListMine(ctx context.Context, userID string) ([]entity.Vehicle, error) {
	return s.Vehicles.ListVisibleTo(ctx, userID)
}

// ListPublic serves the public gallery, a read-heavy endpoint backed by a
// short-lived Redis cache. Cache failures fall through to the database.
func (s *VehicleService) ListPublic(ctx context.Context) ([]entity.VehicleWithOwner, error) {
	if s.RDB != nil {
		var cached []entity.VehicleWithOwner
		ok, err := helpers.RedisGetJSON(ctx, s.RDB, publicGalleryCacheKey, &cached)
		if err != nil {
			s.Logger.WithError(err).Warn("public gallery cache read failed")
		} else if ok {
			return cached, nil
		}
	}
	list, err := s.Vehicles.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	if s.RDB != nil {
		if err := helpers.RedisSetJSON(ctx, s.RDB, publicGalleryCacheKey, list, s.CacheTTL); err != nil {
			s.Logger.WithError(err).Warn("public gallery cache write failed")
		}
	}
	return list, nil
}

type UpdateDetailsInput struct {
	Modelo           *string
	Placa            *string
	Ano              *int
	Cor              *string
	ValorFIPE        *string
	RecallPendente   *bool
	ProximaRevisaoKm *int
}

// UpdateDetails applies a partial update to core fields and additional
// details. Only the owner may edit.
func (s *VehicleService) UpdateDetails(ctx context.Context, sub policy.Subject, id string, in UpdateDetailsInput) (*entity.Vehicle, error) {
	vw, err := s.Get(ctx, sub, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanEdit(sub, &vw.Vehicle) {
		return nil, errs.ErrForbidden
	}
	v := &vw.Vehicle
	if in.Modelo != nil {
		v.Modelo = strings.TrimSpace(*in.Modelo)
	}
	if in.Placa != nil {
		v.Placa = NormalizePlate(*in.Placa)
	}
	if in.Ano != nil {
		v.Ano = *in.Ano
	}
	if in.Cor != nil {
		v.Cor = strings.TrimSpace(*in.Cor)
	}
	if in.ValorFIPE != nil {
		v.ValorFIPE = strings.TrimSpace(*in.ValorFIPE)
	}
	if in.RecallPendente != nil {
		v.RecallPendente = *in.RecallPendente
	}
	if in.ProximaRevisaoKm != nil {
		v.ProximaRevisaoKm = in.ProximaRevisaoKm
	}
	if err := s.Vehicles.UpdateDetails(ctx, v); err != nil {
		return nil, err
	}
	if v.IsPublic {
		s.invalidateGallery(ctx)
		s.indexPublic(ctx, vw)
	}
	return v, nil
}

// Share grants view access to the user identified by email. Share is
// idempotent-hostile on purpose: sharing twice reports errs.ErrAlreadyShared
// so the client can tell the user.
func (s *VehicleService) Share(ctx context.Context, sub policy.Subject, id, email string) (*entity.Vehicle, error) {
	vw, err := s.Get(ctx, sub, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanShare(sub, &vw.Vehicle) {
		return nil, errs.ErrForbidden
	}
	target, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	if target.ID == vw.OwnerID {
		return nil, errs.ErrSelfShare
	}
	if err := s.Vehicles.AddShare(ctx, id, target.ID); err != nil {
		return nil, err
	}
	vw.SharedWith = append(vw.SharedWith, target.ID)
	s.Logger.WithFields(logrus.Fields{"vehicle_id": id, "shared_with": target.ID}).Info("vehicle shared")

	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:      target.Email,
			Subject: "Um veículo foi compartilhado com você",
			Text:    fmt.Sprintf("%s compartilhou o veículo %s (%s) com você.", vw.Owner.Nome, vw.Modelo, vw.Placa),
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).Warn("enqueue share email failed")
		}
	}
	return &vw.Vehicle, nil
}

// TogglePrivacy flips the vehicle between public and private, keeping the
// gallery cache and the search index in sync with the new state.
func (s *VehicleService) TogglePrivacy(ctx context.Context, sub policy.Subject, id string) (bool, error) {
	vw, err := s.Get(ctx, sub, id)
	if err != nil {
		return false, err
	}
	if !policy.CanTogglePrivacy(sub, &vw.Vehicle) {
		return false, errs.ErrForbidden
	}
	isPublic, err := s.Vehicles.TogglePrivacy(ctx, id)
	if err != nil {
		return false, err
	}
	s.invalidateGallery(ctx)
	vw.IsPublic = isPublic
	if isPublic {
		s.indexPublic(ctx, vw)
	} else {
		s.removeFromIndex(ctx, id)
	}
	return isPublic, nil
}

// UploadPhoto stores the image in the bucket and records its public URL on
// the vehicle. Objects are keyed by vehicle id plus a random name so a
// re-upload never races a stale CDN entry.
func (s *VehicleService) UploadPhoto(ctx context.Context, sub policy.Subject, id, filename, contentType string, r io.Reader) (string, error) {
	vw, err := s.Get(ctx, sub, id)
	if err != nil {
		return "", err
	}
	if !policy.CanEdit(sub, &vw.Vehicle) {
		return "", errs.ErrForbidden
	}
	if s.GCS == nil {
		return "", errors.New("object storage is not configured")
	}
	objectPath := fmt.Sprintf("vehicles/%s/%s%s", id, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		s.Logger.WithError(err).WithField("vehicle_id", id).Error("photo upload failed")
		return "", err
	}
	if err := s.Vehicles.SetImageURL(ctx, id, url); err != nil {
		return "", err
	}
	if vw.IsPublic {
		s.invalidateGallery(ctx)
		vw.ImagemURL = url
		s.indexPublic(ctx, vw)
	}
	return url, nil
}

// Delete removes the vehicle and scrubs it from the gallery cache and search
// index.
func (s *VehicleService) Delete(ctx context.Context, sub policy.Subject, id string) error {
	vw, err := s.Get(ctx, sub, id)
	if err != nil {
		return err
	}
	if !policy.CanDelete(sub, &vw.Vehicle) {
		return errs.ErrForbidden
	}
	if err := s.Vehicles.Delete(ctx, id); err != nil {
		return err
	}
	if vw.IsPublic {
		s.invalidateGallery(ctx)
	}
	s.removeFromIndex(ctx, id)
	s.Logger.WithField("vehicle_id", id).Info("vehicle deleted")
	return nil
}

// VehicleDoc is the search-index projection of a public vehicle.
type VehicleDoc struct {
	ID        string `json:"id"`
	Modelo    string `json:"modelo"`
	Placa     string `json:"placa"`
	Ano       int    `json:"ano"`
	Cor       string `json:"cor"`
	ImagemURL string `json:"imagem_url,omitempty"`
	OwnerNome string `json:"owner_nome"`
}

// SearchPublic queries the search index over the public gallery. Only
// vehicles currently public are indexed, so no policy filtering is needed on
// the way out.
func (s *VehicleService) SearchPublic(ctx context.Context, query string) ([]VehicleDoc, error) {
	if s.ES == nil {
		return nil, errors.New("search is not configured")
	}
	var body bytes.Buffer
	q := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"modelo^2", "cor", "placa"},
			},
		},
	}
	if err := json.NewEncoder(&body).Encode(q); err != nil {
		return nil, err
	}
	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(&body),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search failed: %s", res.Status())
	}
	var parsed struct {
		Hits struct {
			Hits []struct {
				Source VehicleDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	docs := make([]VehicleDoc, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		docs = append(docs, h.Source)
	}
	return docs, nil
}

// indexPublic upserts the vehicle into the search index. Indexing is best
// effort; the database stays the source of truth.
func (s *VehicleService) indexPublic(ctx context.Context, vw *entity.VehicleWithOwner) {
	if s.ES == nil {
		return
	}
	doc := VehicleDoc{
		ID:        vw.ID,
		Modelo:    vw.Modelo,
		Placa:     vw.Placa,
		Ano:       vw.Ano,
		Cor:       vw.Cor,
		ImagemURL: vw.ImagemURL,
		OwnerNome: vw.Owner.Nome,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return
	}
	res, err := s.ES.Index(
		s.ESIndex,
		bytes.NewReader(body),
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(vw.ID),
	)
	if err != nil {
		s.Logger.WithError(err).WithField("vehicle_id", vw.ID).Warn("search index upsert failed")
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		s.Logger.WithFields(logrus.Fields{"vehicle_id": vw.ID, "status": res.Status()}).Warn("search index upsert rejected")
	}
}

func (s *VehicleService) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil {
		return
	}
	res, err := s.ES.Delete(s.ESIndex, id, s.ES.Delete.WithContext(ctx))
	if err != nil {
		s.Logger.WithError(err).WithField("vehicle_id", id).Warn("search index delete failed")
		return
	}
	defer res.Body.Close()
}

func (s *VehicleService) invalidateGallery(ctx context.Context) {
	if s.RDB == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.RDB, publicGalleryCacheKey); err != nil {
		s.Logger.WithError(err).Warn("public gallery cache invalidation failed")
	}
}
