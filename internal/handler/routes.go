package handler

// APIV1Prefix is the base path for the public API.
const APIV1Prefix = "/api/v1"

// Path segments shared by the handlers and the OpenAPI document.
const (
	jobRolesPath     = "/job-roles"
	applicationsPath = "/applications"
	adminPath        = "/admin"
	healthPath       = "/health"

	roleIDParam        = "role_id"
	applicationIDParam = "application_id"
)

// byID turns a param name into a gin path segment, e.g. "/:role_id".
func byID(param string) string { return "/:" + param }
