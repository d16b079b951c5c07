package cmd

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workflowr/internal/config"
	"github.com/manav03panchal/workflowr/internal/model"
)

// completeProjects completes project names, or IDs for names with spaces.
func completeProjects(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.Session == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, p := range ctx.Session.Projects.List() {
		if c, ok := completion(p.ID, p.Name, p.ClientName, toComplete); ok {
			completions = append(completions, c)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeTasks completes the first argument with task names.
func completeTasks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.Session == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names := projectNames()
	var completions []string
	for _, t := range ctx.Session.Tasks.List() {
		if c, ok := completion(t.ID, t.Name, names[t.ProjectID], toComplete); ok {
			completions = append(completions, c)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeTaskStatus completes TASK then STATUS.
func completeTaskStatus(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completeTasks(cmd, args, toComplete)
	case 1:
		var completions []string
		for _, s := range model.Statuses {
			if strings.HasPrefix(string(s), toComplete) {
				completions = append(completions, string(s)+"\t"+s.Label())
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// completeConfigKeys completes the KEY of `config set`.
func completeConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var keys []string
	for k := range config.DefaultRuntimeConfig().Settings() {
		if strings.HasPrefix(k, toComplete) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func completion(id, name, hint, toComplete string) (string, bool) {
	value := name
	if strings.ContainsAny(name, " \t") {
		value = id
	}
	if !strings.HasPrefix(strings.ToLower(value), strings.ToLower(toComplete)) {
		return "", false
	}
	if hint != "" {
		return value + "\t" + hint, true
	}
	return value, true
}
