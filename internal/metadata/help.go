package metadata

const (
	environmentHelp = "You can set the environment based on where the session is recorded. " +
		"[Learn more about environments.](https://docs.highlight.run/reference#options)"
	appVersionHelp = "This is the app version for your application. You can set the version to help " +
		"categorize what version of the app a user was using. " +
		"[Learn more about setting the version.](https://docs.highlight.run/reference#options)"
	networkRecordingHelp = "This specifies whether Highlight records the status codes, headers, and bodies " +
		"for XML/Fetch requests made in your app. " +
		"[Learn more about recording network requests and responses.](https://docs.highlight.run/docs/recording-network-requests-and-responses)"
	identifierHelp = "Did you know that you can enrich sessions with additional metadata? They'll show up here. " +
		"You can [learn more here](https://docs.highlight.run/docs/identifying-users)."
)
