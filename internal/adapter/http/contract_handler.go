package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"safeguard-backend/internal/usecase/contract"
)

type ContractHandler struct{ uc *contract.Usecase }

func NewContractHandler(uc *contract.Usecase) *ContractHandler { return &ContractHandler{uc: uc} }

type contractCallReq struct {
	ContractName string `json:"contractName"`
	FunctionName string `json:"functionName"`
	Args         []any  `json:"args"`
}

type contractResp struct {
	Data *contract.Ack `json:"data"`
}

func (h *ContractHandler) ReadContract(c echo.Context) error {
	args, err := contract.ParseArgs(c.QueryParam("args"))
	if err != nil {
		return respondError(c, err)
	}
	ack, err := h.uc.Read(c.Request().Context(), contract.Intent{
		Contract: c.QueryParam("contract"),
		Function: c.QueryParam("function"),
		Args:     args,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, contractResp{Data: ack})
}

func (h *ContractHandler) WriteContract(c echo.Context) error {
	var req contractCallReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, badRequest("invalid body"))
	}
	ack, err := h.uc.Write(c.Request().Context(), contract.Intent{
		Contract: req.ContractName,
		Function: req.FunctionName,
		Args:     req.Args,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, contractResp{Data: ack})
}
