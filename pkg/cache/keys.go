package cache

// KeyUser caches the current-user profile.
const KeyUser = "user"

// KeyProjects caches a team's project list.
func KeyProjects(teamID string) string {
	return "projects_" + teamID
}

// KeyFiles caches a project's file list.
func KeyFiles(projectID string) string {
	return "files_" + projectID
}

// KeyTeamFiles caches a whole-team file pull.
func KeyTeamFiles(teamID string) string {
	return "team_files_" + teamID
}
