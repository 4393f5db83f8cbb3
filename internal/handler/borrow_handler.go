package handler

import (
	"go-storage-hub/internal/model"
	"go-storage-hub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BorrowHandler struct {
	service service.BorrowService
}

func NewBorrowHandler(s service.BorrowService) *BorrowHandler {
	return &BorrowHandler{service: s}
}

// Create opens a new borrow request
// POST /api/v1/borrow-requests
func (h *BorrowHandler) Create(c *fiber.Ctx) error {
	var req service.CreateBorrowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	request, err := h.service.Create(actorFromCtx(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Borrow request created", "data": request})
}

// List returns borrow requests scoped to the caller's role
// GET /api/v1/borrow-requests?status=pending_manager
func (h *BorrowHandler) List(c *fiber.Ctx) error {
	requests, err := h.service.List(actorFromCtx(c), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(requests)
}

// Get returns a single borrow request
// GET /api/v1/borrow-requests/:id
func (h *BorrowHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	request, err := h.service.Get(actorFromCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(request)
}

// ManagerApprove passes the manager gate of the dual-approval pipeline
// POST /api/v1/borrow-requests/:id/manager-approve
func (h *BorrowHandler) ManagerApprove(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	request, err := h.service.ManagerApprove(actorFromCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Borrow request approved by manager", "data": request})
}

type rejectBorrowRequest struct {
	Reason string `json:"reason"`
}

// Reject rejects a borrow request at whichever approval gate it is waiting on
// POST /api/v1/borrow-requests/:id/reject
func (h *BorrowHandler) Reject(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var req rejectBorrowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := actorFromCtx(c)

	// Route the rejection to the matching stage. Each service method
	// re-verifies the status under a row lock.
	current, err := h.service.Get(actor, id)
	if err != nil {
		return respondError(c, err)
	}

	var request *model.BorrowRequest
	if current.Status == model.BorrowStatusPendingManager {
		request, err = h.service.ManagerReject(actor, id, req.Reason)
	} else {
		request, err = h.service.StorageReject(actor, id, req.Reason)
	}
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Borrow request rejected", "data": request})
}

// StorageApprove passes the storage gate; the request becomes active
// POST /api/v1/borrow-requests/:id/approve
func (h *BorrowHandler) StorageApprove(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	request, err := h.service.StorageApprove(actorFromCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Borrow request approved", "data": request})
}

// RequestReturn flips an active borrow to pending_return
// POST /api/v1/borrow-requests/:id/return
func (h *BorrowHandler) RequestReturn(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var req service.ReturnDetails
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	returnRequest, err := h.service.RequestReturn(actorFromCtx(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Return requested", "data": returnRequest})
}

// LegacyReject handles the older single-stage requests resource
// POST /api/v1/requests/:id/reject
func (h *BorrowHandler) LegacyReject(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var req rejectBorrowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	request, err := h.service.LegacyReject(actorFromCtx(c), id, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request rejected", "data": request})
}

// ApproveReturn confirms a requested return
// POST /api/v1/requests/:id/approve-return
func (h *BorrowHandler) ApproveReturn(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	request, err := h.service.ApproveReturn(actorFromCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Return approved", "data": request})
}

// Receive books the returned item back into stock
// POST /api/v1/requests/:id/receive
func (h *BorrowHandler) Receive(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	request, err := h.service.Receive(actorFromCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item received", "data": request})
}
