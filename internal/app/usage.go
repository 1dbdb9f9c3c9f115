package app

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v45/github"
)

// Version is set at compile time
var Version = "0.0.0"

const (
	Owner = "pouriyajamshidi"
	Repo  = "tcprobe"

	updateCheckTimeout = 10 * time.Second
)

var releaseTagPattern = regexp.MustCompile(`^v?(\d+\.\d+\.\d+)$`)

func compareVersions(v1, v2 string) int {
	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")

	for i := range min(len(parts1), len(parts2)) {
		n1, _ := strconv.Atoi(parts1[i])
		n2, _ := strconv.Atoi(parts2[i])

		if n1 < n2 {
			return -1
		}
		if n1 > n2 {
			return 1
		}
	}

	// for cases in which version numbers differ in length
	if len(parts1) < len(parts2) {
		return -1
	}

	if len(parts1) > len(parts2) {
		return 1
	}

	return 0
}

// PrintVersion displays the version
func PrintVersion() {
	fmt.Printf("tcprobe version %s\n", Version)
}

// releaseFetcher returns the tag name of the latest release.
type releaseFetcher func(ctx context.Context) (string, error)

func latestGitHubRelease(ctx context.Context) (string, error) {
	c := github.NewClient(nil)

	// unauthenticated requests from the same IP are limited to 60 per hour
	release, _, err := c.Repositories.GetLatestRelease(ctx, Owner, Repo)
	if err != nil {
		return "", err
	}

	return release.GetTagName(), nil
}

// CheckForUpdates checks for newer versions of tcprobe and returns update message
func CheckForUpdates() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), updateCheckTimeout)
	defer cancel()

	return checkForUpdates(ctx, latestGitHubRelease)
}

func checkForUpdates(ctx context.Context, fetch releaseFetcher) (string, error) {
	latestTagName, err := fetch(ctx)
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}

	latestVersion := releaseTagPattern.FindStringSubmatch(latestTagName)
	if len(latestVersion) == 0 {
		return "", fmt.Errorf("version name does not match expected format: %s", latestTagName)
	}

	switch compareVersions(Version, latestVersion[1]) {
	case -1:
		return fmt.Sprintf("Found newer version %s\nPlease update tcprobe from the URL below:\nhttps://github.com/%s/%s/releases/tag/%s",
			latestVersion[1], Owner, Repo, latestTagName), nil
	case 1:
		return fmt.Sprintf("Current version %s is newer than the latest release %s",
			Version, latestVersion[1]), nil
	default:
		return fmt.Sprintf("tcprobe is on the latest version: %s", Version), nil
	}
}
