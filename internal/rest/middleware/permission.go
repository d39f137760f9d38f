package middleware

import (
	"github.com/drivestack/drivestack/internal/rbac"
	"github.com/drivestack/drivestack/internal/tenancy"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/gin-gonic/gin"
)

// RequirePermission guards a route with the permission evaluator. The
// resolution runs after authentication, so the tenant and actor are already
// in context. On an employee-matched resolution the employee record id is
// attached to the context so services can credit completions to the right
// employee.
func RequirePermission(evaluator *rbac.Evaluator, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := tenancy.AssertContext(ctx); err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		res, err := evaluator.HasPermission(ctx, permission)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		if res.Strategy == rbac.ResolutionEmployee {
			ctx = types.SetEmployeeID(ctx, res.Employee.ID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
