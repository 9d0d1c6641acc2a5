// Command issuetoken signs an access token for a given employee and role.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
)

func main() {
	employeeID := flag.String("employee", "", "employee ID carried in the token")
	roleName := flag.String("role", "", "requester role: Admin, HR, Manager or Employee")
	flag.Parse()

	role, ok := user.ParseRole(*roleName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *roleName)
		os.Exit(2)
	}

	cfg, err := config.LoadJWT()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.Secret, cfg.AccessExpiration).GenerateAccessToken(*employeeID, role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error signing token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
}
