package voice

import (
	"errors"
	"net/http"

	"customer-chatbot/internal/middleware"
	"customer-chatbot/internal/services"
	"customer-chatbot/internal/speech"
	"customer-chatbot/internal/utils"

	"github.com/gin-gonic/gin"
)

// maxUploadSize bounds an uploaded recording (about five minutes of 16 kHz mono PCM).
const maxUploadSize = 10 << 20

// SendVoice godoc
// @Summary Send a voice message
// @Description Transcribe a 16 kHz mono PCM or WAV recording and answer it as a chat turn
// @Tags voice
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Recording"
// @Success 200 {object} utils.Response{data=VoiceResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 422 {object} utils.Response
// @Failure 429 {object} utils.Response
// @Failure 502 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /voice [post]
func SendVoice(c *gin.Context) {
	worker := services.VoiceMgr
	if !worker.Available() {
		c.JSON(http.StatusServiceUnavailable, utils.NewErrorResponse(http.StatusServiceUnavailable, "Speech recognition is not configured"))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Audio file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Failed to read audio file"))
		return
	}
	defer file.Close()

	text, err := worker.Transcribe(c.Request.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVoiceBusy):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, "Voice input is already in progress"))
		case errors.Is(err, speech.ErrUnsupportedAudio):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrNoSpeech):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, "No speech recognized"))
		default:
			c.JSON(http.StatusBadGateway, utils.NewErrorResponse(http.StatusBadGateway, "Speech recognition failed"))
		}
		return
	}

	metadata := map[string]interface{}{
		"origin": "upload",
		"file":   fileHeader.Filename,
	}
	if id := middleware.RequestID(c); id != "" {
		metadata["request_id"] = id
	}
	reply := services.ProcessVoiceTranscript(text, metadata)

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", VoiceResponse{
		Transcript: text,
		Intent:     reply.Intent,
		Response:   reply.Response,
		Product:    reply.Product,
		TurnID:     reply.TurnID,
	}))
}
