// Package http exposes the scheduling and admission operations over REST.
// Handlers translate between the wire DTOs and the application layer; all
// domain decisions, the admission check included, stay behind the command
// and query handlers.
package http

import (
	"errors"
	"net/http"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// dateLayout is the wire form of schedule dates.
const dateLayout = "2006-01-02"

// actorHeader carries the identity performing a mutation. Authentication
// itself lives upstream; the API only needs the ID for the audit trail.
const actorHeader = "X-Actor-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	attachProductHandler       commands.AttachProductCommandHandler
	updateProductHandler       commands.UpdateProductCommandHandler
	removeProductHandler       commands.RemoveProductCommandHandler
	createDepartureHandler     commands.CreateDepartureCommandHandler
	updateDepartureHandler     commands.UpdateDepartureCommandHandler
	deactivateDepartureHandler commands.DeactivateDepartureCommandHandler

	departureUsageHandler      queries.GetDepartureUsageQueryHandler
	capacityReportHandler      queries.GetCapacityReportQueryHandler
	availableDeparturesHandler queries.ListAvailableDeparturesQueryHandler
	listDeparturesHandler      queries.ListDeparturesQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	attachProductHandler commands.AttachProductCommandHandler,
	updateProductHandler commands.UpdateProductCommandHandler,
	removeProductHandler commands.RemoveProductCommandHandler,
	createDepartureHandler commands.CreateDepartureCommandHandler,
	updateDepartureHandler commands.UpdateDepartureCommandHandler,
	deactivateDepartureHandler commands.DeactivateDepartureCommandHandler,
	departureUsageHandler queries.GetDepartureUsageQueryHandler,
	capacityReportHandler queries.GetCapacityReportQueryHandler,
	availableDeparturesHandler queries.ListAvailableDeparturesQueryHandler,
	listDeparturesHandler queries.ListDeparturesQueryHandler,
) *Server {
	return &Server{
		attachProductHandler:       attachProductHandler,
		updateProductHandler:       updateProductHandler,
		removeProductHandler:       removeProductHandler,
		createDepartureHandler:     createDepartureHandler,
		updateDepartureHandler:     updateDepartureHandler,
		deactivateDepartureHandler: deactivateDepartureHandler,
		departureUsageHandler:      departureUsageHandler,
		capacityReportHandler:      capacityReportHandler,
		availableDeparturesHandler: availableDeparturesHandler,
		listDeparturesHandler:      listDeparturesHandler,
	}
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/products", s.AttachProduct)
	v1.PUT("/products/:productId", s.UpdateProduct)
	v1.DELETE("/products/:productId", s.RemoveProduct)

	v1.POST("/departures", s.CreateDeparture)
	v1.PATCH("/departures/:departureId", s.UpdateDeparture)
	v1.DELETE("/departures/:departureId", s.DeactivateDeparture)
	v1.GET("/departures", s.ListDepartures)
	v1.GET("/departures/available", s.ListAvailableDepartures)
	v1.GET("/departures/:departureId/usage", s.GetDepartureUsage)
	v1.GET("/departures/:departureId/capacity-report", s.GetCapacityReport)
}

// NewProductRequest is the payload for registering a product.
type NewProductRequest struct {
	ShipmentID  string   `json:"shipmentId"`
	Description string   `json:"description"`
	ProductType string   `json:"productType"`
	Weight      *float64 `json:"weight"`
	Volume      *float64 `json:"volume"`
	DepartureID *string  `json:"departureId"`
}

// UpdateProductRequest carries the full desired state of a product.
// A nil departure ID unassigns it.
type UpdateProductRequest struct {
	Description string   `json:"description"`
	ProductType string   `json:"productType"`
	Weight      *float64 `json:"weight"`
	Volume      *float64 `json:"volume"`
	DepartureID *string  `json:"departureId"`
}

// NewDepartureRequest is the payload for scheduling a departure.
type NewDepartureRequest struct {
	Date                 string  `json:"date"`
	ArrivalDate          *string `json:"arrivalDate"`
	CarrierID            string  `json:"carrierId"`
	DestinationID        *string `json:"destinationId"`
	AcceptedProductTypes string  `json:"acceptedProductTypes"`
	CapacityWeight       float64 `json:"capacityWeight"`
	CapacityVolume       float64 `json:"capacityVolume"`
}

// UpdateDepartureRequest is a partial update; absent fields stay unchanged.
type UpdateDepartureRequest struct {
	Date                 *string  `json:"date"`
	ArrivalDate          *string  `json:"arrivalDate"`
	CarrierID            *string  `json:"carrierId"`
	DestinationID        *string  `json:"destinationId"`
	AcceptedProductTypes *string  `json:"acceptedProductTypes"`
	CapacityWeight       *float64 `json:"capacityWeight"`
	CapacityVolume       *float64 `json:"capacityVolume"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Dimensions []string `json:"dimensions,omitempty"`
}

// AttachProduct handles POST /api/v1/products.
func (s *Server) AttachProduct(ctx echo.Context) error {
	actorID, err := s.actor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req NewProductRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	shipmentID, err := kernel.UUIDFromString(req.ShipmentID)
	if err != nil {
		return s.badRequest(ctx, "Invalid shipment ID")
	}

	departureID, err := optionalUUID(req.DepartureID)
	if err != nil {
		return s.badRequest(ctx, "Invalid departure ID")
	}

	cmd, err := commands.NewAttachProductCommand(
		actorID, shipmentID, req.Description, req.ProductType, req.Weight, req.Volume, departureID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.attachProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": cmd.ProductID().String()})
}

// UpdateProduct handles PUT /api/v1/products/:productId.
func (s *Server) UpdateProduct(ctx echo.Context) error {
	actorID, err := s.actor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	productID, err := kernel.UUIDFromString(ctx.Param("productId"))
	if err != nil {
		return s.badRequest(ctx, "Invalid product ID")
	}

	var req UpdateProductRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	departureID, err := optionalUUID(req.DepartureID)
	if err != nil {
		return s.badRequest(ctx, "Invalid departure ID")
	}

	cmd, err := commands.NewUpdateProductCommand(
		actorID, productID, req.Description, req.ProductType, req.Weight, req.Volume, departureID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.updateProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveProduct handles DELETE /api/v1/products/:productId.
func (s *Server) RemoveProduct(ctx echo.Context) error {
	actorID, err := s.actor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	productID, err := kernel.UUIDFromString(ctx.Param("productId"))
	if err != nil {
		return s.badRequest(ctx, "Invalid product ID")
	}

	cmd, err := commands.NewRemoveProductCommand(actorID, productID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.removeProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateDeparture handles POST /api/v1/departures.
func (s *Server) CreateDeparture(ctx echo.Context) error {
	actorID, err := s.actor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req NewDepartureRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return s.badRequest(ctx, "Invalid departure date")
	}

	arrivalDate, err := optionalDate(req.ArrivalDate)
	if err != nil {
		return s.badRequest(ctx, "Invalid arrival date")
	}

	carrierID, err := kernel.UUIDFromString(req.CarrierID)
	if err != nil {
		return s.badRequest(ctx, "Invalid carrier ID")
	}

	destinationID, err := optionalUUID(req.DestinationID)
	if err != nil {
		return s.badRequest(ctx, "Invalid destination ID")
	}

	cmd, err := commands.NewCreateDepartureCommand(
		actorID, date, carrierID, destinationID, arrivalDate,
		req.AcceptedProductTypes, req.CapacityWeight, req.CapacityVolume)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.createDepartureHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": cmd.DepartureID().String()})
}

// UpdateDeparture handles PATCH /api/v1/departures/:departureId.
func (s *Server) UpdateDeparture(ctx echo.Context) error {
	actorID, err := s.actor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	departureID, err := kernel.UUIDFromString(ctx.Param("departureId"))
	if err != nil {
		return s.badRequest(ctx, "Invalid departure ID")
	}

	var req UpdateDepartureRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	date, err := optionalDate(req.Date)
	if err != nil {
		return s.badRequest(ctx, "Invalid departure date")
	}

	arrivalDate, err := optionalDate(req.ArrivalDate)
	if err != nil {
		return s.badRequest(ctx, "Invalid arrival date")
	}

	carrierID, err := optionalUUID(req.CarrierID)
	if err != nil {
		return s.badRequest(ctx, "Invalid carrier ID")
	}

	destinationID, err := optionalUUID(req.DestinationID)
	if err != nil {
		return s.badRequest(ctx, "Invalid destination ID")
	}

	cmd, err := commands.NewUpdateDepartureCommand(
		actorID, departureID, date, carrierID, destinationID, arrivalDate,
		req.AcceptedProductTypes, req.CapacityWeight, req.CapacityVolume)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.updateDepartureHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeactivateDeparture handles DELETE /api/v1/departures/:departureId.
// Departures are soft-deactivated; assigned products stay where they are.
func (s *Server) DeactivateDeparture(ctx echo.Context) error {
	actorID, err := s.actor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	departureID, err := kernel.UUIDFromString(ctx.Param("departureId"))
	if err != nil {
		return s.badRequest(ctx, "Invalid departure ID")
	}

	cmd, err := commands.NewDeactivateDepartureCommand(actorID, departureID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.deactivateDepartureHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DepartureUsageResponse reports a departure's load with one-decimal
// percentages for the detail screens.
type DepartureUsageResponse struct {
	DepartureID    string  `json:"departureId"`
	UsedWeight     float64 `json:"usedWeight"`
	UsedVolume     float64 `json:"usedVolume"`
	CapacityWeight float64 `json:"capacityWeight"`
	CapacityVolume float64 `json:"capacityVolume"`
	PctWeight      float64 `json:"pctWeight"`
	PctVolume      float64 `json:"pctVolume"`
}

// GetDepartureUsage handles GET /api/v1/departures/:departureId/usage.
func (s *Server) GetDepartureUsage(ctx echo.Context) error {
	departureID, err := kernel.UUIDFromString(ctx.Param("departureId"))
	if err != nil {
		return s.badRequest(ctx, "Invalid departure ID")
	}

	query, err := queries.NewGetDepartureUsageQuery(departureID)
	if err != nil {
		return s.fail(ctx, err)
	}

	usage, err := s.departureUsageHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DepartureUsageResponse{
		DepartureID:    usage.DepartureID.String(),
		UsedWeight:     usage.UsedWeight,
		UsedVolume:     usage.UsedVolume,
		CapacityWeight: usage.CapacityWeight,
		CapacityVolume: usage.CapacityVolume,
		PctWeight:      usage.PctWeight,
		PctVolume:      usage.PctVolume,
	})
}

// CapacityReportResponse is the full report: header, whole-number occupancy
// summary and the per-product-type breakdown.
type CapacityReportResponse struct {
	DepartureID          string                   `json:"departureId"`
	Date                 string                   `json:"date"`
	ArrivalDate          *string                  `json:"arrivalDate"`
	CarrierID            string                   `json:"carrierId"`
	AcceptedProductTypes string                   `json:"acceptedProductTypes"`
	Active               bool                     `json:"active"`
	CapacityWeight       float64                  `json:"capacityWeight"`
	CapacityVolume       float64                  `json:"capacityVolume"`
	UsedWeight           float64                  `json:"usedWeight"`
	UsedVolume           float64                  `json:"usedVolume"`
	PctWeight            int                      `json:"pctWeight"`
	PctVolume            int                      `json:"pctVolume"`
	Breakdown            []TypeBreakdownResponse `json:"breakdown"`
}

// TypeBreakdownResponse is one product type's slice of the report.
type TypeBreakdownResponse struct {
	ProductType string  `json:"productType"`
	Count       int64   `json:"count"`
	Weight      float64 `json:"weight"`
	Volume      float64 `json:"volume"`
}

// GetCapacityReport handles GET /api/v1/departures/:departureId/capacity-report.
func (s *Server) GetCapacityReport(ctx echo.Context) error {
	departureID, err := kernel.UUIDFromString(ctx.Param("departureId"))
	if err != nil {
		return s.badRequest(ctx, "Invalid departure ID")
	}

	query, err := queries.NewGetCapacityReportQuery(departureID)
	if err != nil {
		return s.fail(ctx, err)
	}

	report, err := s.capacityReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	breakdown := make([]TypeBreakdownResponse, len(report.Breakdown))
	for i, row := range report.Breakdown {
		breakdown[i] = TypeBreakdownResponse{
			ProductType: row.ProductType,
			Count:       row.Count,
			Weight:      row.Weight,
			Volume:      row.Volume,
		}
	}

	return ctx.JSON(http.StatusOK, CapacityReportResponse{
		DepartureID:          report.DepartureID.String(),
		Date:                 report.Date.Format(dateLayout),
		ArrivalDate:          formatOptionalDate(report.ArrivalDate),
		CarrierID:            report.CarrierID.String(),
		AcceptedProductTypes: report.AcceptedProductTypes,
		Active:               report.Active,
		CapacityWeight:       report.CapacityWeight,
		CapacityVolume:       report.CapacityVolume,
		UsedWeight:           report.UsedWeight,
		UsedVolume:           report.UsedVolume,
		PctWeight:            report.PctWeight,
		PctVolume:            report.PctVolume,
		Breakdown:            breakdown,
	})
}

// AvailableDepartureResponse is one slot on the assignment screens.
type AvailableDepartureResponse struct {
	DepartureID          string  `json:"departureId"`
	Date                 string  `json:"date"`
	CarrierID            string  `json:"carrierId"`
	AcceptedProductTypes string  `json:"acceptedProductTypes"`
	CapacityWeight       float64 `json:"capacityWeight"`
	CapacityVolume       float64 `json:"capacityVolume"`
	UsedWeight           float64 `json:"usedWeight"`
	UsedVolume           float64 `json:"usedVolume"`
	PctWeight            float64 `json:"pctWeight"`
	PctVolume            float64 `json:"pctVolume"`
	IsFullByWeight       bool    `json:"isFullByWeight"`
	IsFullByVolume       bool    `json:"isFullByVolume"`
	IsFull               bool    `json:"isFull"`
}

// ListAvailableDepartures handles GET /api/v1/departures/available.
func (s *Server) ListAvailableDepartures(ctx echo.Context) error {
	after := time.Now()
	if raw := ctx.QueryParam("after"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return s.badRequest(ctx, "Invalid after date")
		}
		after = parsed
	}

	query, err := queries.NewListAvailableDeparturesQuery(ctx.QueryParam("productType"), after)
	if err != nil {
		return s.fail(ctx, err)
	}

	departures, err := s.availableDeparturesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]AvailableDepartureResponse, len(departures))
	for i, dep := range departures {
		response[i] = AvailableDepartureResponse{
			DepartureID:          dep.DepartureID.String(),
			Date:                 dep.Date.Format(dateLayout),
			CarrierID:            dep.CarrierID.String(),
			AcceptedProductTypes: dep.AcceptedProductTypes,
			CapacityWeight:       dep.CapacityWeight,
			CapacityVolume:       dep.CapacityVolume,
			UsedWeight:           dep.UsedWeight,
			UsedVolume:           dep.UsedVolume,
			PctWeight:            dep.PctWeight,
			PctVolume:            dep.PctVolume,
			IsFullByWeight:       dep.IsFullByWeight,
			IsFullByVolume:       dep.IsFullByVolume,
			IsFull:               dep.IsFull,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// DepartureListEntryResponse is one row of the schedule calendar.
type DepartureListEntryResponse struct {
	DepartureID          string  `json:"departureId"`
	Date                 string  `json:"date"`
	ArrivalDate          *string `json:"arrivalDate"`
	CarrierID            string  `json:"carrierId"`
	DestinationID        *string `json:"destinationId"`
	AcceptedProductTypes string  `json:"acceptedProductTypes"`
	CapacityWeight       float64 `json:"capacityWeight"`
	CapacityVolume       float64 `json:"capacityVolume"`
	Active               bool    `json:"active"`
}

// ListDepartures handles GET /api/v1/departures?from=...&to=...
func (s *Server) ListDepartures(ctx echo.Context) error {
	from, err := time.Parse(dateLayout, ctx.QueryParam("from"))
	if err != nil {
		return s.badRequest(ctx, "Invalid from date")
	}

	to, err := time.Parse(dateLayout, ctx.QueryParam("to"))
	if err != nil {
		return s.badRequest(ctx, "Invalid to date")
	}

	query, err := queries.NewListDeparturesQuery(from, to)
	if err != nil {
		return s.fail(ctx, err)
	}

	departures, err := s.listDeparturesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]DepartureListEntryResponse, len(departures))
	for i, dep := range departures {
		var destinationID *string
		if dep.DestinationID != nil {
			raw := dep.DestinationID.String()
			destinationID = &raw
		}

		response[i] = DepartureListEntryResponse{
			DepartureID:          dep.DepartureID.String(),
			Date:                 dep.Date.Format(dateLayout),
			ArrivalDate:          formatOptionalDate(dep.ArrivalDate),
			CarrierID:            dep.CarrierID.String(),
			DestinationID:        destinationID,
			AcceptedProductTypes: dep.AcceptedProductTypes,
			CapacityWeight:       dep.CapacityWeight,
			CapacityVolume:       dep.CapacityVolume,
			Active:               dep.Active,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// actor resolves the acting identity from the request headers.
func (s *Server) actor(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(actorHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("actorID")
	}

	actorID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("actorID", err)
	}

	return actorID, nil
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: message,
	})
}

// fail maps application errors onto the wire taxonomy. Capacity rejections
// carry the evaluator's verdict through unchanged: the code distinguishes a
// departure that was already full from one this product would overflow, and
// the message names the offending dimensions.
func (s *Server) fail(ctx echo.Context, err error) error {
	var rejection *services.RejectionError
	if errors.As(err, &rejection) {
		dimensions := make([]string, len(rejection.Decision.Dimensions))
		for i, d := range rejection.Decision.Dimensions {
			dimensions[i] = string(d)
		}

		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:       string(rejection.Decision.Reason),
			Message:    rejection.Decision.Message(),
			Dimensions: dimensions,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrTransientContention):
		return ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Code:    "TRANSIENT_CONTENTION",
			Message: "The departure is busy, retry the operation",
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL",
			Message: "Internal server error",
		})
	}
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(dateLayout)
	return &formatted
}
