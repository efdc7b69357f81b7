package search

// Entry is a keyed group of canned results
type Entry struct {
	Key     string
	Results []Result
}

// DefaultIndex is the built in result table, keys are matched in this order
var DefaultIndex = []Entry{
	{
		Key: "python",
		Results: []Result{
			{
				Title:   "Python (programming language) - Wikipedia",
				URL:     "https://en.wikipedia.org/wiki/Python_(programming_language)",
				Snippet: "Python is a high-level, interpreted, general-purpose programming language.",
			},
			{
				Title:   "Python.org",
				URL:     "https://www.python.org/",
				Snippet: "The official home of the Python Programming Language.",
			},
			{
				Title:   "Learn Python - Free Interactive Python Tutorial",
				URL:     "https://www.learnpython.org/",
				Snippet: "Learn Python, a powerful programming language used for many different applications.",
			},
		},
	},
	{
		Key: "agent",
		Results: []Result{
			{
				Title:   "Agent Protocol",
				URL:     "https://agentprotocol.ai/",
				Snippet: "A common interface for AI agents.",
			},
			{
				Title:   "A2A Protocol",
				URL:     "https://github.com/a2aproject/a2a-python",
				Snippet: "Official Python SDK for the Agent-to-Agent (A2A) protocol.",
			},
		},
	},
	{
		Key: "heroku",
		Results: []Result{
			{
				Title:   "Heroku: Cloud Application Platform",
				URL:     "https://www.heroku.com/",
				Snippet: "Heroku is a platform as a service (PaaS) that enables developers to build, run, and operate applications entirely in the cloud.",
			},
			{
				Title:   "Heroku Inference",
				URL:     "https://elements.heroku.com/addons/heroku-inference",
				Snippet: "Add-on for accessing AI inference capabilities within your Heroku application.",
			},
		},
	},
}
