package api

import "github.com/gin-gonic/gin"

// Controller is the router group a Module attaches its endpoints to.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, h HandlerFuncWithAuth) {
	c.Group.GET(path, ResolveEndpointWithAuth(h))
}

func (c *Controller) POST(path string, h HandlerFuncWithAuth) {
	c.Group.POST(path, ResolveEndpointWithAuth(h))
}

func (c *Controller) PUT(path string, h HandlerFuncWithAuth) {
	c.Group.PUT(path, ResolveEndpointWithAuth(h))
}

func (c *Controller) PUBLIC_GET(path string, h HandlerFunc) {
	c.Group.GET(path, ResolveEndpoint(h))
}

func (c *Controller) PUBLIC_POST(path string, h HandlerFunc) {
	c.Group.POST(path, ResolveEndpoint(h))
}

// OPTIONAL_* routes need a group mounted with OptionalAuth to ever see a user.
func (c *Controller) OPTIONAL_GET(path string, h HandlerFuncOptionalAuth) {
	c.Group.GET(path, ResolveEndpointOptionalAuth(h))
}

func (c *Controller) OPTIONAL_POST(path string, h HandlerFuncOptionalAuth) {
	c.Group.POST(path, ResolveEndpointOptionalAuth(h))
}

// RAW_GET is for endpoints that render something other than JSON.
func (c *Controller) RAW_GET(path string, h gin.HandlerFunc) {
	c.Group.GET(path, h)
}
