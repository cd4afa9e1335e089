package controllers

import (
	"errors"
	"net/http"

	"github.com/Govind-619/StudioSite/payments"
	"github.com/Govind-619/StudioSite/utils"
	"github.com/gin-gonic/gin"
)

// paymentAppError maps a lifecycle error to its HTTP status and message
func paymentAppError(err error) *utils.AppError {
	message := utils.ErrInternalServer
	var perr *payments.Error
	if errors.As(err, &perr) && perr.Message != "" {
		message = perr.Message
	}

	switch payments.KindOf(err) {
	case payments.KindValidation:
		return utils.BadRequestError(utils.ErrInvalidInput, err)
	case payments.KindConfiguration:
		return utils.ServiceUnavailableError(message, err)
	case payments.KindUpstream:
		return utils.BadGatewayError(message, err)
	case payments.KindInvalidSignature:
		return utils.BadRequestError(message, err).WithDetails(gin.H{"verified": false})
	case payments.KindNotFound:
		return utils.NotFoundError(message, err)
	case payments.KindConflict:
		return utils.ConflictError(message, err)
	default:
		return utils.InternalError(message, err)
	}
}

func respondPaymentError(c *gin.Context, err error) {
	appErr := paymentAppError(err)
	if appErr.Code >= http.StatusInternalServerError {
		utils.LogError("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	utils.RespondAppError(c, appErr)
}
