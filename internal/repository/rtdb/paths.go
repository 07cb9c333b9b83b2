// Package rtdb implements the repositories on the hierarchical realtime
// database. All entities live under one tree:
//
//	users/employees/{uid}
//	users/employees/{uid}/job_applications/{appID}
//	users/employers/{uid}
//	users/employers/{uid}/jobs/{jobID}
//	users/employers/{uid}/jobs/{jobID}/applications/{appID}
package rtdb

import "go-jobboard-backend/internal/domain"

func profilePath(role domain.Role, uid string) string {
	return "users/" + role.Subtree() + "/" + uid
}

func roleSubtreePath(role domain.Role) string {
	return "users/" + role.Subtree()
}

func jobsPath(employerUID string) string {
	return profilePath(domain.RoleEmployer, employerUID) + "/jobs"
}

func jobPath(employerUID, jobID string) string {
	return jobsPath(employerUID) + "/" + jobID
}

func jobApplicationsPath(employerUID, jobID string) string {
	return jobPath(employerUID, jobID) + "/applications"
}

func jobApplicationPath(employerUID, jobID, applicationID string) string {
	return jobApplicationsPath(employerUID, jobID) + "/" + applicationID
}

func employeeApplicationsPath(employeeUID string) string {
	return profilePath(domain.RoleEmployee, employeeUID) + "/job_applications"
}

func employeeApplicationPath(employeeUID, applicationID string) string {
	return employeeApplicationsPath(employeeUID) + "/" + applicationID
}
