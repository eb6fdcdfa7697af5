// Package response implements the uniform API envelope
// {status, message, data} shared by every handler.
package response

import "github.com/gofiber/fiber/v2"

type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success writes a success envelope. Status code defaults to 200.
func Success(c *fiber.Ctx, data interface{}, message string, statusCode ...int) error {
	code := fiber.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}
	return c.Status(code).JSON(Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope. Status code defaults to 500.
func Error(c *fiber.Ctx, message string, statusCode ...int) error {
	code := fiber.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}
	return c.Status(code).JSON(Envelope{
		Status:  "error",
		Message: message,
		Data:    nil,
	})
}
