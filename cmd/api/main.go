package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/vetanpay/payroll-backend-go/internal/config"
	appHTTP "github.com/vetanpay/payroll-backend-go/internal/handler/http"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/database"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/jwt"
	"github.com/vetanpay/payroll-backend-go/internal/repository/postgresql"
	arrearService "github.com/vetanpay/payroll-backend-go/internal/service/arrear"
	authService "github.com/vetanpay/payroll-backend-go/internal/service/auth"
	employeeService "github.com/vetanpay/payroll-backend-go/internal/service/employee"
	leaveService "github.com/vetanpay/payroll-backend-go/internal/service/leave"
	ledgerService "github.com/vetanpay/payroll-backend-go/internal/service/ledger"
	payrollService "github.com/vetanpay/payroll-backend-go/internal/service/payroll"
	statutoryService "github.com/vetanpay/payroll-backend-go/internal/service/statutory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db, cfg.App.MigrationsDir); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveLedgerRepo := postgresql.NewLeaveLedgerRepository(db)
	advanceLedgerRepo := postgresql.NewAdvanceLedgerRepository(db)
	fineRepo := postgresql.NewFineRepository(db)
	statutoryRepo := postgresql.NewStatutoryRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	arrearRepo := postgresql.NewArrearRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewService(userRepo, JWTService)
	employeeSvc := employeeService.NewService(transactor, employeeRepo)
	statutorySvc := statutoryService.NewService(statutoryRepo)
	payrollSvc := payrollService.NewService(
		transactor,
		payrollService.NewCalculator(),
		payrollRepo,
		employeeRepo,
		attendanceRepo,
		leaveLedgerRepo,
		advanceLedgerRepo,
		fineRepo,
		statutoryRepo,
	)
	leaveSvc := leaveService.NewService(transactor, employeeRepo, attendanceRepo, leaveLedgerRepo, payrollSvc)
	ledgerSvc := ledgerService.NewService(employeeRepo, leaveLedgerRepo, advanceLedgerRepo, fineRepo, payrollSvc, statutoryRepo)
	arrearSvc := arrearService.NewService(transactor, arrearRepo, employeeRepo, payrollRepo)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		JWTService:        JWTService,
		AuthHandler:       appHTTP.NewAuthHandler(authSvc),
		EmployeeHandler:   appHTTP.NewEmployeeHandler(employeeSvc),
		AttendanceHandler: appHTTP.NewAttendanceHandler(leaveSvc),
		LedgerHandler:     appHTTP.NewLedgerHandler(ledgerSvc),
		StatutoryHandler:  appHTTP.NewStatutoryHandler(statutorySvc),
		PayrollHandler:    appHTTP.NewPayrollHandler(payrollSvc),
		ArrearHandler:     appHTTP.NewArrearHandler(arrearSvc),
		AppName:           cfg.App.Name,
		AppEnv:            cfg.App.Env,
		AllowedOrigins:    cfg.App.AllowedOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
