package services

import (
	"encoding/json"
	"errors"

	"customer-chatbot/internal/metrics"
	"customer-chatbot/internal/models"
	"customer-chatbot/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// TurnRequest is one user message entering the pipeline.
type TurnRequest struct {
	Input    string
	Source   models.TurnSource
	Metadata map[string]interface{}
}

// Reply is the bot side of a turn.
type Reply struct {
	Intent   models.IntentName `json:"intent"`
	Response string            `json:"response"`
	Product  *models.Product   `json:"product,omitempty"`
	// TurnID is 0 when the turn could not be persisted.
	TurnID uint `json:"turn_id"`
}

// GenerateResponse classifies input and selects the reply. It never fails:
// lookup errors are logged and the intent's generic replies are used.
func GenerateResponse(input string) Reply {
	intent := ClassifyIntent(input)
	reply := Reply{Intent: intent}

	if intent == models.IntentProductInquiry {
		if product, text, ok := productReply(input); ok {
			reply.Product = product
			reply.Response = text
			return reply
		}
	}

	reply.Response = RandomResponse(intent)
	return reply
}

// productReply resolves a product mentioned in input. ok is false when no
// product was resolved and the generic replies should be used.
func productReply(input string) (*models.Product, string, bool) {
	name, err := FindProductName(input)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			metrics.ProductLookupsTotal.WithLabelValues("miss").Inc()
		} else {
			metrics.ProductLookupsTotal.WithLabelValues("error").Inc()
			logger.Log.Error("Product lookup failed", zap.Error(err))
		}
		return nil, "", false
	}

	product, err := GetProductByName(name)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			metrics.ProductLookupsTotal.WithLabelValues("error").Inc()
			logger.Log.Error("Product details lookup failed", zap.String("product", name), zap.Error(err))
		} else {
			metrics.ProductLookupsTotal.WithLabelValues("miss").Inc()
		}
		return nil, "Sorry, I couldn't find details for the product: " + name, true
	}

	metrics.ProductLookupsTotal.WithLabelValues("hit").Inc()
	return product, FormatProductDetails(product), true
}

// ProcessTurn generates the reply for req and appends the turn to history.
// A history failure is logged and the reply is still returned.
func ProcessTurn(req TurnRequest) Reply {
	if req.Source == "" {
		req.Source = models.TurnSourceText
	}

	reply := GenerateResponse(req.Input)

	turn := &models.ChatTurn{
		UserInput:   req.Input,
		BotResponse: reply.Response,
		Intent:      reply.Intent,
		Source:      req.Source,
	}
	if len(req.Metadata) > 0 {
		if data, err := json.Marshal(req.Metadata); err == nil {
			turn.Metadata = datatypes.JSON(data)
		}
	}

	if err := RecordTurn(turn); err != nil {
		metrics.HistoryWriteFailures.Inc()
		logger.Log.Error("Failed to save chat history",
			zap.String("intent", string(reply.Intent)),
			zap.String("source", string(req.Source)),
			zap.Error(err))
	} else {
		reply.TurnID = turn.ID
	}

	metrics.TurnsTotal.WithLabelValues(string(reply.Intent), string(req.Source)).Inc()
	return reply
}
