package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/garagemlabs/garagem-api/internal/application"
	"github.com/garagemlabs/garagem-api/internal/domain/policy"
	"github.com/garagemlabs/garagem-api/pkg/response"
	"github.com/garagemlabs/garagem-api/pkg/validation"
)

// maxPhotoSize caps vehicle photo uploads at 8 MiB.
const maxPhotoSize = 8 << 20

type VehicleHandler struct {
	Svc    *application.VehicleService
	Logger *logrus.Logger
}

func NewVehicleHandler(svc *application.VehicleService, logger *logrus.Logger) *VehicleHandler {
	return &VehicleHandler{Svc: svc, Logger: logger}
}

// subjectFrom builds the policy subject from the identity the auth
// middleware stored, or an anonymous subject when none is present.
func subjectFrom(c *gin.Context) policy.Subject {
	if uid := c.GetString("userID"); uid != "" {
		return policy.Authenticated(uid)
	}
	return policy.Anonymous()
}

type createVehicleRequest struct {
	Modelo string `json:"modelo" binding:"required"`
	Placa  string `json:"placa" binding:"required"`
	Ano    int    `json:"ano" binding:"required,gte=1900,lte=2100"`
	Cor    string `json:"cor" binding:"required"`
}

type updateDetailsRequest struct {
	Modelo           *string `json:"modelo"`
	Placa            *string `json:"placa"`
	Ano              *int    `json:"ano" binding:"omitempty,gte=1900,lte=2100"`
	Cor              *string `json:"cor"`
	ValorFIPE        *string `json:"valorFIPE"`
	RecallPendente   *bool   `json:"recallPendente"`
	ProximaRevisaoKm *int    `json:"proximaRevisaoKm" binding:"omitempty,gte=0"`
}

type shareRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	v, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), application.CreateVehicleInput{
		Modelo: req.Modelo,
		Placa:  req.Placa,
		Ano:    req.Ano,
		Cor:    req.Cor,
	})
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toVehicleView(v, true), "veículo criado", nil)
}

// ListMine returns vehicles the caller owns or that were shared with them.
func (h *VehicleHandler) ListMine(c *gin.Context) {
	uid := c.GetString("userID")
	list, err := h.Svc.ListMine(c.Request.Context(), uid)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	views := make([]vehicleView, 0, len(list))
	for i := range list {
		views = append(views, toVehicleView(&list[i], list[i].OwnerID == uid))
	}
	response.Success(c, http.StatusOK, views, "veículos", gin.H{"count": len(views)})
}

// Get serves a single vehicle. The route sits behind OptionalAuth so public
// vehicles resolve for anonymous callers too; hidden vehicles come back 404.
func (h *VehicleHandler) Get(c *gin.Context) {
	sub := subjectFrom(c)
	vw, err := h.Svc.Get(c.Request.Context(), sub, c.Param("id"))
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toVehicleWithOwnerView(vw, policy.IsOwner(sub, &vw.Vehicle)), "veículo", nil)
}

func (h *VehicleHandler) UpdateDetails(c *gin.Context) {
	var req updateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	v, err := h.Svc.UpdateDetails(c.Request.Context(), subjectFrom(c), c.Param("id"), application.UpdateDetailsInput{
		Modelo:           req.Modelo,
		Placa:            req.Placa,
		Ano:              req.Ano,
		Cor:              req.Cor,
		ValorFIPE:        req.ValorFIPE,
		RecallPendente:   req.RecallPendente,
		ProximaRevisaoKm: req.ProximaRevisaoKm,
	})
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toVehicleView(v, true), "veículo atualizado", nil)
}

func (h *VehicleHandler) Share(c *gin.Context) {
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	v, err := h.Svc.Share(c.Request.Context(), subjectFrom(c), c.Param("id"), req.Email)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toVehicleView(v, true), "veículo compartilhado", nil)
}

func (h *VehicleHandler) TogglePrivacy(c *gin.Context) {
	isPublic, err := h.Svc.TogglePrivacy(c.Request.Context(), subjectFrom(c), c.Param("id"))
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	msg := "veículo agora é privado"
	if isPublic {
		msg = "veículo agora é público"
	}
	response.Success(c, http.StatusOK, gin.H{"isPublic": isPublic}, msg, nil)
}

// UploadPhoto accepts a multipart form with a "foto" file field and stores it
// in the object bucket.
func (h *VehicleHandler) UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("foto")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file field 'foto'", nil)
		return
	}
	if fileHeader.Size > maxPhotoSize {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "file too large", nil)
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error[any](c, http.StatusBadRequest, "only image uploads are accepted", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	defer file.Close()

	url, err := h.Svc.UploadPhoto(c.Request.Context(), subjectFrom(c), c.Param("id"), fileHeader.Filename, contentType, file)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"imagem_url": url}, "foto enviada", nil)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), subjectFrom(c), c.Param("id")); err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "veículo removido", nil)
}

// ListPublic serves the anonymous gallery.
func (h *VehicleHandler) ListPublic(c *gin.Context) {
	list, err := h.Svc.ListPublic(c.Request.Context())
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	views := make([]vehicleView, 0, len(list))
	for i := range list {
		views = append(views, toVehicleWithOwnerView(&list[i], false))
	}
	response.Success(c, http.StatusOK, views, "galeria pública", gin.H{"count": len(views)})
}

// SearchPublic queries the search index over public vehicles. The q query
// parameter is required.
func (h *VehicleHandler) SearchPublic(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query parameter 'q'", nil)
		return
	}
	docs, err := h.Svc.SearchPublic(c.Request.Context(), q)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, docs, "resultados", gin.H{"count": len(docs)})
}
