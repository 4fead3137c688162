package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"github.com/ivanfarhani22/management-ecommerce-sub000/repository"
)

// ChatbotService answers storefront questions with an ordered rule list.
// It keeps no conversation state; every reply is a function of the message
// and the catalog/order data.
type ChatbotService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

func NewChatbotService(products repository.ProductRepository, orders repository.OrderRepository) *ChatbotService {
	return &ChatbotService{products: products, orders: orders}
}

var (
	greetingRe    = regexp.MustCompile(`(?i)\b(hi|hello|hey|good (morning|afternoon|evening))\b`)
	orderNumberRe = regexp.MustCompile(`(?i)\bORD-\d{8}-[0-9a-f]{8}\b`)
	orderAskRe    = regexp.MustCompile(`(?i)\b(order|status|where.*package|tracking)\b`)
	productAskRe  = regexp.MustCompile(`(?i)(?:price of|how much (?:is|are|for)|do you (?:have|sell)|looking for)\s+(?:an?\s+|the\s+)?(.+)`)
	shippingRe    = regexp.MustCompile(`(?i)\b(shipping|delivery)\b`)
)

// Reply walks the rules top to bottom and answers with the first match.
func (s *ChatbotService) Reply(ctx context.Context, userID, message string) (string, error) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return "Tell me what you are looking for and I will try to help.", nil
	}

	if number := orderNumberRe.FindString(msg); number != "" {
		return s.orderStatusReply(ctx, userID, strings.ToUpper(number[:12])+strings.ToLower(number[12:]))
	}

	if m := productAskRe.FindStringSubmatch(msg); m != nil {
		return s.productReply(ctx, strings.TrimRight(strings.TrimSpace(m[1]), "?.!"))
	}

	if shippingRe.MatchString(msg) {
		regular, _ := models.DeliveryCost(models.DeliveryRegular)
		express, _ := models.DeliveryCost(models.DeliveryExpress)
		return fmt.Sprintf("We ship everywhere in the country: regular delivery costs %.0f and express costs %.0f.", regular, express), nil
	}

	if orderAskRe.MatchString(msg) {
		return "Send me your order number (it looks like ORD-20250101-a1b2c3d4) and I will check its status.", nil
	}

	if greetingRe.MatchString(msg) {
		return "Hello! I can check order status, look up products, or explain shipping options.", nil
	}

	return "Sorry, I did not get that. You can ask about products, shipping, or an order number.", nil
}

func (s *ChatbotService) orderStatusReply(ctx context.Context, userID, number string) (string, error) {
	order, err := s.orders.FindByNumber(ctx, number)
	if err == repository.ErrOrderNotFound {
		return fmt.Sprintf("I could not find an order %s.", number), nil
	}
	if err != nil {
		return "", err
	}
	// Never leak another customer's order through the bot.
	if order.UserID != userID {
		return fmt.Sprintf("I could not find an order %s.", number), nil
	}
	return fmt.Sprintf("Order %s is %s; payment is %s.", order.OrderNumber, order.Status, order.Payment.Status), nil
}

func (s *ChatbotService) productReply(ctx context.Context, query string) (string, error) {
	products, err := s.products.SearchByName(ctx, query, 3)
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return fmt.Sprintf("I could not find anything matching %q.", query), nil
	}

	parts := make([]string, 0, len(products))
	for _, p := range products {
		avail := "in stock"
		if p.Stock <= 0 {
			avail = "out of stock"
		}
		parts = append(parts, fmt.Sprintf("%s costs %.0f (%s)", p.Name, p.Price, avail))
	}
	return "Here is what I found: " + strings.Join(parts, "; ") + ".", nil
}
