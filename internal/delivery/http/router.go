package http

import (
	"net/http"

	"hospital-management-api/internal/delivery/http/handler"
	"hospital-management-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

const (
	id        = "{id:[0-9a-fA-F-]{36}}"
	patientID = "{patientId:[0-9a-fA-F-]{36}}"
	userID    = "{userId:[0-9a-fA-F-]{36}}"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	adminHandler      *handler.AdminHandler
	staffHandler      *handler.StaffHandler
	assignmentHandler *handler.AssignmentHandler
	patientHandler    *handler.PatientHandler
	reportHandler     *handler.ReportHandler
	rayHandler        *handler.RayHandler
	medicineHandler   *handler.MedicineHandler
	auditLogHandler   *handler.AuditLogHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	staffHandler *handler.StaffHandler,
	assignmentHandler *handler.AssignmentHandler,
	patientHandler *handler.PatientHandler,
	reportHandler *handler.ReportHandler,
	rayHandler *handler.RayHandler,
	medicineHandler *handler.MedicineHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		adminHandler:      adminHandler,
		staffHandler:      staffHandler,
		assignmentHandler: assignmentHandler,
		patientHandler:    patientHandler,
		reportHandler:     reportHandler,
		rayHandler:        rayHandler,
		medicineHandler:   medicineHandler,
		auditLogHandler:   auditLogHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	r.setupUsers(api)
	r.setupReports(api)
	r.setupRays(api)
	r.setupMedicine(api)

	// CORS preflight
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) setupUsers(api *mux.Router) {
	// Public
	public := api.PathPrefix("/users").Subrouter()
	public.HandleFunc("/signup/admin", r.authHandler.SignupAdmin).Methods(http.MethodPost)
	public.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)
	public.HandleFunc("/password-reset", r.authHandler.RequestPasswordReset).Methods(http.MethodPost)
	public.HandleFunc("/password-reset/verify", r.authHandler.VerifyPasswordReset).Methods(http.MethodPost)
	public.HandleFunc("/password-reset/confirm", r.authHandler.ConfirmPasswordReset).Methods(http.MethodPost)

	// Any authenticated user
	self := api.PathPrefix("/users").Subrouter()
	self.Use(r.authMiddleware.Authenticate)
	self.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	self.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	self.HandleFunc("/me", r.authHandler.UpdateCurrentUser).Methods(http.MethodPut)

	// Superuser
	super := api.PathPrefix("/users").Subrouter()
	super.Use(r.authMiddleware.Authenticate)
	super.Use(middleware.RequireSuperUser)
	super.HandleFunc("/admins/pending", r.adminHandler.ListPending).Methods(http.MethodGet)
	super.HandleFunc("/admins/active", r.adminHandler.ListActive).Methods(http.MethodGet)
	super.HandleFunc("/admins/accept", r.adminHandler.Accept).Methods(http.MethodPost)
	super.HandleFunc("/admins/"+id, r.adminHandler.Get).Methods(http.MethodGet)
	super.HandleFunc("/admins/"+id, r.adminHandler.Delete).Methods(http.MethodDelete)
	super.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	super.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Doctor and nurse
	caregiver := api.PathPrefix("/users").Subrouter()
	caregiver.Use(r.authMiddleware.Authenticate)
	caregiver.Use(middleware.RequireCaregiver)
	caregiver.HandleFunc("/my-patients", r.patientHandler.ListMine).Methods(http.MethodGet)
	caregiver.HandleFunc("/my-patients/"+id, r.patientHandler.GetMine).Methods(http.MethodGet)

	doctor := api.PathPrefix("/users/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/nurses", r.assignmentHandler.ListMyNurses).Methods(http.MethodGet)
	doctor.HandleFunc("/nurses/"+id, r.assignmentHandler.GetMyNurse).Methods(http.MethodGet)

	nurse := api.PathPrefix("/users/nurse").Subrouter()
	nurse.Use(r.authMiddleware.Authenticate)
	nurse.Use(middleware.RequireNurse)
	nurse.HandleFunc("/doctors", r.assignmentHandler.ListMyDoctors).Methods(http.MethodGet)
	nurse.HandleFunc("/doctors/"+id, r.assignmentHandler.GetMyDoctor).Methods(http.MethodGet)

	// Admin
	admin := api.PathPrefix("/users").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/signup", r.staffHandler.Signup).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.staffHandler.ListDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/nurses", r.staffHandler.ListNurses).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/names", r.staffHandler.ListDoctorNames).Methods(http.MethodGet)
	admin.HandleFunc("/nurses/names", r.staffHandler.ListNurseNames).Methods(http.MethodGet)
	admin.HandleFunc("/accounts/"+id, r.staffHandler.GetAccount).Methods(http.MethodGet)
	admin.HandleFunc("/accounts/"+id, r.staffHandler.UpdateAccount).Methods(http.MethodPut)
	admin.HandleFunc("/accounts/"+id, r.staffHandler.DeleteAccount).Methods(http.MethodDelete)
	admin.HandleFunc("/accounts/"+id+"/patients", r.staffHandler.ListAccountPatients).Methods(http.MethodGet)
	admin.HandleFunc("/accounts/"+id+"/related", r.staffHandler.ListRelated).Methods(http.MethodGet)
	admin.HandleFunc("/assignments/doctor-nurse", r.assignmentHandler.AddNurses).Methods(http.MethodPost)
	admin.HandleFunc("/assignments/doctor-nurse", r.assignmentHandler.RemoveNurse).Methods(http.MethodDelete)
	admin.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/patients", r.patientHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/patients/"+id, r.patientHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/patients/"+id, r.patientHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/patients/"+id, r.patientHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/patients/"+id+"/caregivers", r.patientHandler.AddCaregivers).Methods(http.MethodPost)
	admin.HandleFunc("/patients/"+id+"/caregivers/"+userID, r.patientHandler.RemoveCaregiver).Methods(http.MethodDelete)
}

func (r *Router) setupReports(api *mux.Router) {
	shared := api.PathPrefix("/reports").Subrouter()
	shared.Use(r.authMiddleware.Authenticate)
	shared.HandleFunc("/patients/"+patientID, r.reportHandler.ListForPatient).Methods(http.MethodGet)

	nurse := api.PathPrefix("/reports/nurse").Subrouter()
	nurse.Use(r.authMiddleware.Authenticate)
	nurse.Use(middleware.RequireNurse)
	h := r.reportHandler.Nurse
	nurse.HandleFunc("", h.Create).Methods(http.MethodPost)
	nurse.HandleFunc("", h.ListMine).Methods(http.MethodGet)
	nurse.HandleFunc("/all-doctors", h.CreateForAll).Methods(http.MethodPost)
	nurse.HandleFunc("/received", r.reportHandler.Doctor.ListReceived).Methods(http.MethodGet)
	nurse.HandleFunc("/received/"+id, r.reportHandler.Doctor.GetReceived).Methods(http.MethodGet)
	nurse.HandleFunc("/patients/"+patientID, h.CreateForPatient).Methods(http.MethodPost)
	nurse.HandleFunc("/patients/"+patientID, h.ListMineForPatient).Methods(http.MethodGet)
	nurse.HandleFunc("/patients/"+patientID+"/"+id, h.GetForPatient).Methods(http.MethodGet)
	nurse.HandleFunc("/patients/"+patientID+"/"+id, h.UpdateForPatient).Methods(http.MethodPut)
	nurse.HandleFunc("/patients/"+patientID+"/"+id, h.DeleteForPatient).Methods(http.MethodDelete)
	nurse.HandleFunc("/"+id, h.Get).Methods(http.MethodGet)
	nurse.HandleFunc("/"+id, h.Update).Methods(http.MethodPut)
	nurse.HandleFunc("/"+id, h.Delete).Methods(http.MethodDelete)

	doctor := api.PathPrefix("/reports/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	d := r.reportHandler.Doctor
	doctor.HandleFunc("", d.Create).Methods(http.MethodPost)
	doctor.HandleFunc("", d.ListMine).Methods(http.MethodGet)
	doctor.HandleFunc("/all-nurses", d.CreateForAll).Methods(http.MethodPost)
	doctor.HandleFunc("/received", r.reportHandler.Nurse.ListReceived).Methods(http.MethodGet)
	doctor.HandleFunc("/received/"+id, r.reportHandler.Nurse.GetReceived).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/"+patientID, d.CreateForPatient).Methods(http.MethodPost)
	doctor.HandleFunc("/patients/"+patientID, d.ListMineForPatient).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/"+patientID+"/"+id, d.GetForPatient).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/"+patientID+"/"+id, d.UpdateForPatient).Methods(http.MethodPut)
	doctor.HandleFunc("/patients/"+patientID+"/"+id, d.DeleteForPatient).Methods(http.MethodDelete)
	doctor.HandleFunc("/"+id, d.Get).Methods(http.MethodGet)
	doctor.HandleFunc("/"+id, d.Update).Methods(http.MethodPut)
	doctor.HandleFunc("/"+id, d.Delete).Methods(http.MethodDelete)
}

func (r *Router) setupRays(api *mux.Router) {
	shared := api.PathPrefix("/rays").Subrouter()
	shared.Use(r.authMiddleware.Authenticate)
	shared.HandleFunc("/patients/"+patientID, r.rayHandler.ListForPatient).Methods(http.MethodGet)

	nurse := api.PathPrefix("/rays/received").Subrouter()
	nurse.Use(r.authMiddleware.Authenticate)
	nurse.Use(middleware.RequireNurse)
	nurse.HandleFunc("", r.rayHandler.ListReceived).Methods(http.MethodGet)
	nurse.HandleFunc("/"+id, r.rayHandler.GetReceived).Methods(http.MethodGet)

	doctor := api.PathPrefix("/rays").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("", r.rayHandler.Create).Methods(http.MethodPost)
	doctor.HandleFunc("/", r.rayHandler.Create).Methods(http.MethodPost)
	doctor.HandleFunc("", r.rayHandler.ListMine).Methods(http.MethodGet)
	doctor.HandleFunc("/", r.rayHandler.ListMine).Methods(http.MethodGet)
	doctor.HandleFunc("/all-nurses", r.rayHandler.CreateForAll).Methods(http.MethodPost)
	doctor.HandleFunc("/"+id, r.rayHandler.Get).Methods(http.MethodGet)
	doctor.HandleFunc("/"+id, r.rayHandler.Update).Methods(http.MethodPut)
	doctor.HandleFunc("/"+id, r.rayHandler.Delete).Methods(http.MethodDelete)
}

func (r *Router) setupMedicine(api *mux.Router) {
	shared := api.PathPrefix("/medicine").Subrouter()
	shared.Use(r.authMiddleware.Authenticate)
	shared.HandleFunc("/catalog", r.medicineHandler.ListCatalog).Methods(http.MethodGet)
	shared.HandleFunc("/patients/"+patientID, r.medicineHandler.ListForPatient).Methods(http.MethodGet)

	catalog := api.PathPrefix("/medicine/catalog").Subrouter()
	catalog.Use(r.authMiddleware.Authenticate)
	catalog.Use(middleware.RequireAdminOrDoctor)
	catalog.HandleFunc("", r.medicineHandler.CreateCatalogItem).Methods(http.MethodPost)

	nurse := api.PathPrefix("/medicine/received").Subrouter()
	nurse.Use(r.authMiddleware.Authenticate)
	nurse.Use(middleware.RequireNurse)
	nurse.HandleFunc("", r.medicineHandler.ListReceived).Methods(http.MethodGet)
	nurse.HandleFunc("/"+id, r.medicineHandler.GetReceived).Methods(http.MethodGet)

	doctor := api.PathPrefix("/medicine").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("", r.medicineHandler.Create).Methods(http.MethodPost)
	doctor.HandleFunc("/", r.medicineHandler.Create).Methods(http.MethodPost)
	doctor.HandleFunc("", r.medicineHandler.ListMine).Methods(http.MethodGet)
	doctor.HandleFunc("/", r.medicineHandler.ListMine).Methods(http.MethodGet)
	doctor.HandleFunc("/all-nurses", r.medicineHandler.CreateForAll).Methods(http.MethodPost)
	doctor.HandleFunc("/"+id, r.medicineHandler.Get).Methods(http.MethodGet)
	doctor.HandleFunc("/"+id, r.medicineHandler.Update).Methods(http.MethodPut)
	doctor.HandleFunc("/"+id, r.medicineHandler.Delete).Methods(http.MethodDelete)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
