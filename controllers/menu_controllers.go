package controllers

import (
	"net/http"

	"github.com/faressmahmoud/DeliciousBites-RMS/database"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Menu *database.MenuStore
}

func NewMenuController(menu *database.MenuStore) *MenuController {
	return &MenuController{Menu: menu}
}

// GetAllMenus -> GET /menu
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	items, err := mc.Menu.List(c.Request.Context(), "")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", items)
}

// GetMenusByCategory -> GET /menu/:category
func (mc *MenuController) GetMenusByCategory(c *gin.Context) {
	items, err := mc.Menu.List(c.Request.Context(), c.Param("category"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", items)
}
