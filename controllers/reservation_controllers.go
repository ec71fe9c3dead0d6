package controllers

import (
	"net/http"

	"github.com/faressmahmoud/DeliciousBites-RMS/services"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

type reservationRequest struct {
	UserID    *uint  `json:"userId"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	PartySize int    `json:"partySize"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
}

func (r reservationRequest) input() services.ReservationInput {
	return services.ReservationInput{
		UserID:    r.UserID,
		Name:      r.Name,
		Phone:     r.Phone,
		PartySize: r.PartySize,
		Date:      r.Date,
		Time:      r.Time,
		Status:    r.Status,
	}
}

// CreateReservation -> POST /reservations
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req reservationRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := rc.Reservations.Create(c.Request.Context(), req.input())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", r)
}

// GetReservation -> GET /reservations/:id
func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	r, err := rc.Reservations.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", r)
}

// GetUserReservations -> GET /reservations/user/:userId
func (rc *ReservationController) GetUserReservations(c *gin.Context) {
	userID, err := paramID(c, "userId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	list, err := rc.Reservations.ListForUser(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", list)
}

// GetAllReservations -> GET /reservations
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	list, err := rc.Reservations.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", list)
}

// GetUpcoming -> GET /reservations/dine-in
func (rc *ReservationController) GetUpcoming(c *gin.Context) {
	list, err := rc.Reservations.Upcoming(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Upcoming reservations", list)
}

// UpdateReservation -> PUT /reservations/:id
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req reservationRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := rc.Reservations.Update(c.Request.Context(), id, req.input())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", r)
}

// DeleteReservation -> DELETE /reservations/:id
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := rc.Reservations.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", gin.H{"id": id})
}
